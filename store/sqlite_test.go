package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMigratesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereocode.db")
	db, err := Connect(path)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&Run{}))
	assert.True(t, db.Migrator().HasTable(&ClassStereotypeCount{}))
}

func TestRecordRunPersistsRunAndClassRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereocode.db")
	db, err := Connect(path)
	require.NoError(t, err)

	run := &Run{
		ArchivePath: "testdata/widget.xml",
		UnitCount:   1,
		ClassCount:  1,
		MethodCount: 2,
		FinishedAt:  time.Unix(1700000000, 0),
	}
	rows := []ClassStereotypeCount{
		{Language: "C++", ClassName: "Widget", Stereotypes: "data-class", MethodHistogram: "get:1;set:1"},
	}

	require.NoError(t, RecordRun(db, run, rows))
	assert.NotZero(t, run.ID)

	var got Run
	require.NoError(t, db.First(&got, run.ID).Error)
	assert.Equal(t, "testdata/widget.xml", got.ArchivePath)

	var classRows []ClassStereotypeCount
	require.NoError(t, db.Where("run_id = ?", run.ID).Find(&classRows).Error)
	require.Len(t, classRows, 1)
	assert.Equal(t, "Widget", classRows[0].ClassName)
}

func TestRecordRunWithNoClassRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereocode.db")
	db, err := Connect(path)
	require.NoError(t, err)

	run := &Run{ArchivePath: "testdata/empty.xml"}
	require.NoError(t, RecordRun(db, run, nil))
	assert.NotZero(t, run.ID)
}
