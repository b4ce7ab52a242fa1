package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBackupRestoreData_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}

	files := map[string]string{
		"data.json":                `{"claimed": [1, 2, 3]}`,
		"all_pumpkins.json":        `{"1": {"lat": 1.5, "lng": 2.5}}`,
		"recent_new_pumpkins.json": `{}`,
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(src, rel), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := BackupData(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := RestoreData(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got := map[string]string{}
	err := filepath.WalkDir(restoreDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(restoreDir, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk restore dir: %v", err)
	}

	if !reflect.DeepEqual(files, got) {
		t.Fatalf("restored files mismatch:\nwant=%v\ngot=%v", files, got)
	}
}

func TestBackupData_CarriesOnlyJSONFiles(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "data.json"), []byte(`[1]`), 0o644); err != nil {
		t.Fatalf("write data.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := BackupData(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := RestoreData(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(restoreDir, "data.json")); err != nil {
		t.Fatalf("expected data.json in restore: %v", err)
	}
	if _, err := os.Stat(filepath.Join(restoreDir, "notes.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected notes.txt to be excluded from the archive")
	}
}

func TestRestoreData_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../escape.json",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len("bad")),
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := tw.Write([]byte("bad")); err != nil {
		t.Fatalf("write body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if err := RestoreData(archive, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatalf("expected restore to reject path traversal archive")
	}
}
