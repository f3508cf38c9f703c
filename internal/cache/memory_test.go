package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)

	if _, found := m.Get("absent"); found {
		t.Errorf("Expected miss for key never stored")
	}

	if err := m.Set("report", []byte("version: 2"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found := m.Get("report")
	if !found || !bytes.Equal(got, []byte("version: 2")) {
		t.Errorf("Get = %q, %v; want stored bytes", got, found)
	}

	if err := m.Delete("report"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := m.Get("report"); found {
		t.Errorf("Expected miss after Delete")
	}
}

func TestMemory_CopiesOnSetAndGet(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)

	src := []byte("author: Jane")
	if err := m.Set("report", src, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	src[0] = 'X'

	first, _ := m.Get("report")
	if !bytes.Equal(first, []byte("author: Jane")) {
		t.Errorf("Caller mutation leaked into cache, got %q", first)
	}

	first[0] = 'X'
	second, _ := m.Get("report")
	if !bytes.Equal(second, []byte("author: Jane")) {
		t.Errorf("Mutating a returned slice changed the cache, got %q", second)
	}
}

func TestMemory_Clear(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)
	_ = m.Set("a", []byte("1"), time.Minute)
	_ = m.Set("b", []byte("2"), time.Minute)

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := m.Get("a"); found {
		t.Errorf("Expected miss after Clear")
	}
	if _, found := m.Get("b"); found {
		t.Errorf("Expected miss after Clear")
	}
}

func TestKey_NamespacesByKind(t *testing.T) {
	tmpl := Key("template", "/home/de/response.tmpl")
	snip := Key("snippets", "/home/de/response.tmpl")
	if tmpl == snip {
		t.Errorf("Keys for different kinds must differ, both %q", tmpl)
	}
	if !strings.HasPrefix(tmpl, "dcasgen:v1:template:") {
		t.Errorf("Key = %q, want dcasgen:v1:template: prefix", tmpl)
	}
	if Key("template", "/home/de/response.tmpl") != tmpl {
		t.Errorf("Key must be deterministic for the same kind and path")
	}
}
