package logger

import "testing"

func TestBuild(t *testing.T) {
	for _, env := range []string{"production", "development", "test", ""} {
		if build(env) == nil {
			t.Errorf("build(%q) returned nil", env)
		}
	}
}

func TestGet_InitializesOnce(t *testing.T) {
	first := Get()
	if first == nil {
		t.Fatal("expected a logger")
	}
	Init("production")
	if Get() != first {
		t.Error("Init after first use must not replace the logger")
	}
	Sync()
}
