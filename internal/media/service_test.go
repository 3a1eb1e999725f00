package media_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"

	"github.com/afdei/federation-cms/internal/media"
	"github.com/afdei/federation-cms/pkg/testsupport"
)

type fixture struct {
	svc   media.Service
	files afero.Fs
}

func newFixture(t *testing.T, opts ...media.ServiceOption) fixture {
	t.Helper()
	files := afero.NewMemMapFs()
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	opts = append([]media.ServiceOption{media.WithClock(clock)}, opts...)
	svc := media.NewService(
		media.NewBunAssetRepository(testsupport.NewBunDB(t)),
		media.NewFileStore(files),
		opts...,
	)
	return fixture{svc: svc, files: files}
}

func TestUploadStoresFileAndMetadata(t *testing.T) {
	f := newFixture(t)
	asset, err := f.svc.Upload(context.Background(), media.UploadInput{
		Filename: "Annual Report 2024.PDF",
		MimeType: "application/pdf",
		Body:     strings.NewReader("pdf-bytes"),
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	want := "1714557601000-annual-report-2024.pdf"
	if asset.Filename != want {
		t.Fatalf("expected filename %q, got %q", want, asset.Filename)
	}
	if asset.URL != "/uploads/"+want || asset.Size != int64(len("pdf-bytes")) {
		t.Fatalf("unexpected asset %#v", asset)
	}
	if asset.OriginalName != "Annual Report 2024.PDF" || asset.MimeType != "application/pdf" {
		t.Fatalf("unexpected metadata %#v", asset)
	}
	data, err := afero.ReadFile(f.files, want)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	f := newFixture(t, media.WithMaxUploadBytes(4))
	_, err := f.svc.Upload(context.Background(), media.UploadInput{
		Filename: "big.bin",
		Body:     bytes.NewReader(make([]byte, 5)),
	})
	if !errors.Is(err, media.ErrFileTooLarge) && !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected size validation error, got %v", err)
	}
	entries, err := afero.ReadDir(f.files, "/")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no partial file, found %d entries", len(entries))
	}

	list, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no metadata rows, got %d", len(list))
	}
}

func TestUploadRequiresFile(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upload(context.Background(), media.UploadInput{Filename: "", Body: strings.NewReader("x")})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListNewestFirstAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.svc.Upload(ctx, media.UploadInput{Filename: "a.png", Body: strings.NewReader("a")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	second, err := f.svc.Upload(ctx, media.UploadInput{Filename: "b.png", Body: strings.NewReader("b")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	list, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %#v", list)
	}

	if err := f.svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if exists, _ := afero.Exists(f.files, first.Filename); exists {
		t.Fatalf("expected file %s removed", first.Filename)
	}
	if _, err := f.svc.Get(ctx, first.ID); !errors.Is(err, media.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
	if err := f.svc.Delete(ctx, first.ID); !errors.Is(err, media.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound on second delete, got %v", err)
	}
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	asset, err := f.svc.Upload(ctx, media.UploadInput{Filename: "gone.txt", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if err := f.files.Remove(asset.Filename); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := f.svc.Delete(ctx, asset.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestStoredName(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"photo.jpg":         "1700000000123-photo.jpg",
		"Board Meeting.PNG": "1700000000123-board-meeting.png",
		"noext":             "1700000000123-noext",
	}
	for input, want := range cases {
		if got := media.StoredName(at, input); got != want {
			t.Fatalf("StoredName(%q) = %q, want %q", input, got, want)
		}
	}
}
