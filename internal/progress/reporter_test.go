package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewCIReporter(&buf)
	r.Start(2)
	r.Update(1, "ClassesInfo.json")
	r.Update(2, "EnumsInfo.json")
	r.Finish()

	want := "Loading 2 game files\n[1/2] ClassesInfo.json\n[2/2] EnumsInfo.json\nGame loaded\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected CIReporter under CI")
	}
}

func TestNop(t *testing.T) {
	var r Reporter = Nop{}
	r.Start(3)
	r.Update(1, "x")
	r.Finish()
}
