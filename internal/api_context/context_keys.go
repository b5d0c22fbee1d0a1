package api_context

import (
	"context"

	"github.com/videotube/videos-ms-go/internal/uuid"
)

type ctxKey string

const (
	VideoIDKey    ctxKey = "videoID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

func VideoIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(VideoIDKey).(uuid.UUID)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
