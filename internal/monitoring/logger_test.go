package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("bouts=%d", 3)
	if len(got) != 1 || got[0] != "bouts=3" {
		t.Fatalf("custom logger got %q", got)
	}

	// nil installs a no-op
	SetLogger(nil)
	Logf("dropped")
	if len(got) != 1 {
		t.Errorf("no-op logger should not have reached the previous logger, got %q", got)
	}
}

func TestWarnfPrefixesMessage(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Warnf("height not provided, not computing %s", "spatial metrics")
	if got != "warning: height not provided, not computing spatial metrics" {
		t.Errorf("Warnf logged %q", got)
	}
}
