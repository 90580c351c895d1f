package classify

import (
	"errors"
	"testing"

	"github.com/user/sequencestitch/pkg/pipeline"
)

func always(v bool) func(string) bool {
	return func(string) bool { return v }
}

func TestClassify_CancelledWins(t *testing.T) {
	for _, code := range []int{0, 1, 255} {
		err := Classify(Outcome{ExitCode: code, Cancelled: true, OutputPath: "/out.mp4"}, always(true))
		if !errors.Is(err, pipeline.ErrCancelled) {
			t.Errorf("exit %d: expected ErrCancelled, got %v", code, err)
		}
	}
}

func TestClassify_Success(t *testing.T) {
	if err := Classify(Outcome{OutputPath: "/out.mp4"}, always(true)); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Classify(Outcome{}, nil); err != nil {
		t.Errorf("expected nil without output check, got %v", err)
	}
}

func TestClassify_OutputMissing(t *testing.T) {
	err := Classify(Outcome{Stage: "encode", OutputPath: "/out.mp4"}, always(false))
	if !errors.Is(err, pipeline.ErrOutputNotProduced) {
		t.Errorf("expected ErrOutputNotProduced, got %v", err)
	}
}

func TestClassify_ScenarioD(t *testing.T) {
	stderr := `ffmpeg version 7.0
Input #0, concat, from 'list.txt':
[concat @ 0x1] Impossible to open 'missing.png'
Error opening input file list.txt.
[libx264 @ 0x2] Invalid argument
Conversion failed!
`
	err := Classify(Outcome{Stage: "encode", ExitCode: 1, Stderr: stderr}, always(true))

	var se *pipeline.SubprocessError
	if !errors.As(err, &se) {
		t.Fatalf("expected SubprocessError, got %v", err)
	}
	want := "Error opening input file list.txt.; [libx264 @ 0x2] Invalid argument; Conversion failed!"
	if se.Message != want {
		t.Errorf("expected message %q, got %q", want, se.Message)
	}
	if err.Error() != want {
		t.Errorf("expected error text %q, got %q", want, err.Error())
	}
	if se.ExitCode != 1 || se.Stage != "encode" {
		t.Errorf("unexpected fields: %+v", se)
	}
}

func TestClassify_KeepsLastThree(t *testing.T) {
	stderr := "Error 1\nError 2\nnoise\nError 3\nError 4\n"
	msg := Diagnose(stderr)
	if msg != "Error 2; Error 3; Error 4" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestClassify_CaseSensitive(t *testing.T) {
	msg := Diagnose("error lowercase\nINVALID upper\nFAILED upper\n")
	if msg != "" {
		t.Errorf("expected no match, got %q", msg)
	}
}

func TestClassify_GenericFallback(t *testing.T) {
	err := Classify(Outcome{ExitCode: 69, Stderr: "nothing useful here\n"}, always(true))
	if err == nil || err.Error() != "subprocess exited with code 69" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestClassify_Redactions(t *testing.T) {
	err := Classify(Outcome{
		ExitCode:   1,
		Stderr:     "/Users/me/movie.mov: Invalid data found when processing input\n",
		Redactions: map[string]string{"/Users/me/movie.mov": "video file"},
	}, nil)
	if err == nil || err.Error() != "video file: Invalid data found when processing input" {
		t.Errorf("unexpected error %v", err)
	}
}
