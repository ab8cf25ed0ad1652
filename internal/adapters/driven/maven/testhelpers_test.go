package maven

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRepo serves POMs in the Maven 2 layout and counts requests.
type fakeRepo struct {
	mu       sync.Mutex
	poms     map[string]string
	hits     map[string]int
	statuses map[string]int
	headers  []http.Header
	server   *httptest.Server
}

func newFakeRepo(t *testing.T) *fakeRepo {
	t.Helper()
	r := &fakeRepo{
		poms:     make(map[string]string),
		hits:     make(map[string]int),
		statuses: make(map[string]int),
	}
	r.server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.server.Close)
	return r
}

func (r *fakeRepo) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	path := strings.TrimPrefix(req.URL.Path, "/")
	r.hits[path]++
	r.headers = append(r.headers, req.Header.Clone())
	status, hasStatus := r.statuses[path]
	body, ok := r.poms[path]
	r.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}
	if !ok {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(body))
}

// add registers a POM for "g:a:v" with the given inner XML.
func (r *fakeRepo) add(coords, inner string) *fakeRepo {
	g, a, v := splitCoords(coords)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poms[pomPath(g, a, v)] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>%s</groupId>
  <artifactId>%s</artifactId>
  <version>%s</version>
  %s
</project>`, g, a, v, inner)
	return r
}

func (r *fakeRepo) status(coords string, status int) {
	g, a, v := splitCoords(coords)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[pomPath(g, a, v)] = status
}

func (r *fakeRepo) hitCount(coords string) int {
	g, a, v := splitCoords(coords)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[pomPath(g, a, v)]
}

func (r *fakeRepo) requestHeaders() []http.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]http.Header(nil), r.headers...)
}

func (r *fakeRepo) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Options{Repositories: []string{r.server.URL}, RequestsPerSecond: -1})
	require.NoError(t, err)
	return c
}

func splitCoords(coords string) (string, string, string) {
	parts := strings.Split(coords, ":")
	return parts[0], parts[1], parts[2]
}

// deps renders <dependencies> from "g:a:v[:scope]" entries.
func deps(entries ...string) string {
	var sb strings.Builder
	sb.WriteString("<dependencies>")
	for _, e := range entries {
		sb.WriteString(dep(e, ""))
	}
	sb.WriteString("</dependencies>")
	return sb.String()
}

// dep renders one <dependency> from "g:a:v[:scope]" with extra inner XML.
func dep(entry, extra string) string {
	parts := strings.Split(entry, ":")
	var sb strings.Builder
	fmt.Fprintf(&sb, "<dependency><groupId>%s</groupId><artifactId>%s</artifactId>", parts[0], parts[1])
	if len(parts) > 2 && parts[2] != "" {
		fmt.Fprintf(&sb, "<version>%s</version>", parts[2])
	}
	if len(parts) > 3 {
		fmt.Fprintf(&sb, "<scope>%s</scope>", parts[3])
	}
	sb.WriteString(extra)
	sb.WriteString("</dependency>")
	return sb.String()
}

func exclusion(g, a string) string {
	return fmt.Sprintf("<exclusions><exclusion><groupId>%s</groupId><artifactId>%s</artifactId></exclusion></exclusions>", g, a)
}
