package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestForComponentMemoizes(t *testing.T) {
	a := ForComponent("alpha")
	b := ForComponent("alpha")
	if a != b {
		t.Error("ForComponent should return the same logger for the same name")
	}
}

func TestPrefixAndLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	l := ForComponent("testcomp")
	l.Infof("hello %d", 42)
	l.Warnf("careful")
	l.Errorf("broken")

	out := buf.String()
	if !strings.Contains(out, "INFO [testcomp>] hello 42") {
		t.Errorf("Missing info line, got: %s", out)
	}
	if !strings.Contains(out, "WARN [testcomp>] careful") {
		t.Errorf("Missing warn line, got: %s", out)
	}
	if !strings.Contains(out, "ERROR [testcomp>] broken") {
		t.Errorf("Missing error line, got: %s", out)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	l := ForComponent("quiet")
	l.Debugf("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Error("Debug output should be suppressed when debug is disabled")
	}

	EnableDebugFor("quiet")
	l.Debugf("now visible")
	if !strings.Contains(buf.String(), "DEBUG [quiet>] now visible") {
		t.Errorf("Debug output missing after enabling debug, got: %s", buf.String())
	}
}

func TestGlobalDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})
	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	if !DebugEnabledFor("anything") {
		t.Error("Global debug should enable debug for every component")
	}
}
