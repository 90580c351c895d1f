package sequence

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/user/sequencestitch/pkg/adapters/logger"
	"github.com/user/sequencestitch/pkg/mocks"
	"github.com/user/sequencestitch/pkg/pipeline"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func item(name string, minute int) pipeline.SequenceItem {
	return pipeline.NewSequenceItem("/img/"+name, base.Add(time.Duration(minute)*time.Minute))
}

func names(s *Sequence) string {
	var out []string
	for _, it := range s.Items() {
		out = append(out, it.OriginalFilename)
	}
	return strings.Join(out, ",")
}

func TestSequence_AddRemove(t *testing.T) {
	s := New(nil, logger.NewNoop())
	s.Add(item("a.png", 0), item("b.png", 1), item("c.png", 2))

	if !s.Remove(1) {
		t.Fatal("expected Remove to succeed")
	}
	if got := names(s); got != "a.png,c.png" {
		t.Errorf("got %s", got)
	}
	if s.Remove(5) || s.Remove(-1) {
		t.Error("out of range Remove must be ignored")
	}

	id := s.Items()[0].ID
	if !s.RemoveID(id) {
		t.Error("expected RemoveID to succeed")
	}
	if got := names(s); got != "c.png" {
		t.Errorf("got %s", got)
	}
}

func TestSequence_RemoveDeletesDocumentRenders(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/tmp/page1.png", []byte("png"))

	doc := pipeline.NewSequenceItem("/docs/deck.pdf", base)
	doc.ProcessedPath = "/tmp/page1.png"
	doc.FromDocument = true

	s := New(fs, logger.NewNoop())
	s.Add(doc, item("a.png", 1))
	s.Clear()

	if _, ok := fs.GetFile("/tmp/page1.png"); ok {
		t.Error("expected rendered page to be removed")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty sequence, got %d", s.Len())
	}
}

func TestSequence_Move(t *testing.T) {
	tests := []struct {
		from []int
		to   int
		want string
	}{
		{[]int{0}, 3, "b,c,a,d"},
		{[]int{3}, 0, "d,a,b,c"},
		{[]int{0, 2}, 4, "b,d,a,c"},
		{[]int{1, 2}, 0, "b,c,a,d"},
		{[]int{1}, 1, "a,b,c,d"},
		{[]int{1}, 2, "a,b,c,d"},
		{[]int{9}, 0, "a,b,c,d"},
	}
	for _, tt := range tests {
		s := New(nil, nil)
		s.Add(item("a", 0), item("b", 0), item("c", 0), item("d", 0))
		s.Move(tt.from, tt.to)
		if got := names(s); got != tt.want {
			t.Errorf("Move(%v, %d) = %s, want %s", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSequence_SortByDate(t *testing.T) {
	s := New(nil, nil)
	s.Add(item("late.png", 30), item("early.png", 1), item("mid.png", 10))
	s.Sort(ByDate)
	if got := names(s); got != "early.png,mid.png,late.png" {
		t.Errorf("got %s", got)
	}
}

func TestSequence_SortByName(t *testing.T) {
	s := New(nil, nil)
	s.Add(item("img10.png", 0), item("IMG2.png", 0), item("img1.png", 0), item("cover.png", 0))
	s.Sort(ByName)
	if got := names(s); got != "cover.png,img1.png,IMG2.png,img10.png" {
		t.Errorf("got %s", got)
	}
}

func TestSequence_Paths(t *testing.T) {
	s := New(nil, nil)
	s.Add(item("a.png", 0), item("b.png", 0))
	if got := strings.Join(s.Paths(), ","); got != "/img/a.png,/img/b.png" {
		t.Errorf("got %s", got)
	}
}

func TestNaturalLess(t *testing.T) {
	in := []string{"frame_10.png", "frame_2.png", "Frame_1.png", "frame_002.png", "frame.png", "alpha"}
	sort.SliceStable(in, func(i, j int) bool { return NaturalLess(in[i], in[j]) })
	want := "alpha,frame.png,Frame_1.png,frame_2.png,frame_002.png,frame_10.png"
	if got := strings.Join(in, ","); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
