package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ResolutionLabel is a closed enumeration of the rung labels the service
// knows about. Consumers can rely on never seeing any other key in a
// Resolutions map.
type ResolutionLabel string

const (
	Resolution1080p    ResolutionLabel = "1080p"
	Resolution720p     ResolutionLabel = "720p"
	Resolution480p     ResolutionLabel = "480p"
	Resolution360p     ResolutionLabel = "360p"
	ResolutionOriginal ResolutionLabel = "original"
)

// KnownResolutionLabels lists every valid label, encoding ladder first.
func KnownResolutionLabels() []ResolutionLabel {
	return []ResolutionLabel{
		Resolution1080p,
		Resolution720p,
		Resolution480p,
		Resolution360p,
		ResolutionOriginal,
	}
}

func (l ResolutionLabel) IsValid() bool {
	switch l {
	case Resolution1080p, Resolution720p, Resolution480p, Resolution360p, ResolutionOriginal:
		return true
	}
	return false
}

// Resolutions maps a rung label to the public URL of the encoded variant.
type Resolutions map[ResolutionLabel]string

func (r Resolutions) Value() (driver.Value, error) {
	if r == nil {
		r = Resolutions{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal Resolutions: %w", err)
	}
	return b, nil
}
func (r *Resolutions) Scan(src interface{}) error {
	if src == nil {
		*r = Resolutions{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Resolutions.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return fmt.Errorf("unmarshal Resolutions: %w", err)
	}
	for label := range *r {
		if !label.IsValid() {
			return fmt.Errorf("Resolutions.Scan: unknown resolution label %q", label)
		}
	}
	return nil
}

// ResolutionList is the ordered sequence of labels a video is available in.
// Whenever the transcoding status is completed it matches the key set of the
// Resolutions map.
type ResolutionList []ResolutionLabel

func (l ResolutionList) Value() (driver.Value, error) {
	if l == nil {
		l = ResolutionList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal ResolutionList: %w", err)
	}
	return b, nil
}
func (l *ResolutionList) Scan(src interface{}) error {
	if src == nil {
		*l = ResolutionList{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ResolutionList.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("unmarshal ResolutionList: %w", err)
	}
	return nil
}
