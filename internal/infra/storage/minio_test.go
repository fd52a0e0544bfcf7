package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"voxlate/internal/infra/storage"
)

// fakeS3 answers the two calls a Bucket makes: a bucket location probe
// and a single-part PUT.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Query().Has("location"):
		w.Header().Set("Content-Type", "application/xml")
		io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
	case r.Method == http.MethodHead && r.URL.Path == "/exports/":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(data)
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.String(), http.StatusBadRequest)
	}
}

func TestBucket_Put(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}, types: map[string]string{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	endpoint := strings.TrimPrefix(server.URL, "http://")

	bucket, err := storage.NewBucket(context.Background(), storage.Options{
		Endpoint:  endpoint,
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "exports",
		Region:    "us-east-1",
	})
	if err != nil {
		t.Fatalf("NewBucket error: %v", err)
	}

	body := "%PDF-1.3 fake"
	url, err := bucket.Put(context.Background(), "doc.pdf", strings.NewReader(body), int64(len(body)), "application/pdf")
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if want := server.URL + "/exports/doc.pdf"; url != want {
		t.Errorf("url: got %s, want %s", url, want)
	}
	if got := fake.objects["/exports/doc.pdf"]; !strings.Contains(got, body) {
		t.Errorf("stored object: got %q", got)
	}
	if got := fake.types["/exports/doc.pdf"]; got != "application/pdf" {
		t.Errorf("content type: got %s", got)
	}
}

func TestBucket_MissingBucket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message><BucketName>missing</BucketName></Error>`)
	}))
	defer server.Close()

	_, err := storage.NewBucket(context.Background(), storage.Options{
		Endpoint:  strings.TrimPrefix(server.URL, "http://"),
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "missing",
		Region:    "us-east-1",
	})
	if err == nil {
		t.Error("expected error for missing bucket")
	}
}
