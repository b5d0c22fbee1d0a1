package integration

import (
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/videotube/videos-ms-go/internal/migration"
	"github.com/videotube/videos-ms-go/test/testutil"
)

func TestMigrateUpIntegration(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()

	db := testDB.DB

	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// Give some time for migration to finalize
	time.Sleep(100 * time.Millisecond)

	recs := 0
	err = db.QueryRow("SELECT COUNT(*) FROM videos").Scan(&recs)
	if err != nil {
		t.Fatalf("failed to query migrated table: %v", err)
	}
	if recs != 0 {
		t.Errorf("expected 0 rows in videos after migration, got %d", recs)
	}
}
