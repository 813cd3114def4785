package result

import (
	"sync"
	"testing"

	"github.com/dahlj/integrity-report/pkg/summary"
)

func TestAggregate_Empty(t *testing.T) {
	tree := NewTree("ws")
	if agg := tree.Aggregate(); agg != (summary.Counts{}) {
		t.Errorf("empty tree must aggregate to zero, got %+v", agg)
	}
}

func TestAggregate_SumsChildren(t *testing.T) {
	tree := NewTree("ws")
	tree.AddChild(Leaf{FileName: "a.xml", Counts: summary.Counts{Success: 5, Failure: 2, CallException: 1}})
	tree.AddChild(Leaf{FileName: "b.xml", Counts: summary.Counts{Success: 3, TestException: 4}})

	agg := tree.Aggregate()
	if agg.Success != 8 || agg.Failure != 2 || agg.TestException != 4 || agg.CallException != 1 {
		t.Errorf("wrong aggregate: %+v", agg)
	}
}

func TestAggregate_RecomputedAfterInsert(t *testing.T) {
	tree := NewTree("ws")
	tree.AddChild(Leaf{Counts: summary.Counts{Success: 1}})
	if tree.Aggregate().Success != 1 {
		t.Fatal("first aggregate wrong")
	}
	tree.AddChild(Leaf{Counts: summary.Counts{Success: 2}})
	if tree.Aggregate().Success != 3 {
		t.Error("aggregate must never be cached stale")
	}
}

func TestSortByFileName(t *testing.T) {
	tree := NewTree("ws")
	tree.AddChild(Leaf{FileName: "c.xml"})
	tree.AddChild(Leaf{FileName: "a.xml"})
	tree.AddChild(Leaf{FileName: "b.xml"})
	tree.SortByFileName()

	got := tree.Children()
	for i, want := range []string{"a.xml", "b.xml", "c.xml"} {
		if got[i].FileName != want {
			t.Errorf("child %d: got %s, want %s", i, got[i].FileName, want)
		}
	}
}

func TestAddChild_Concurrent(t *testing.T) {
	tree := NewTree("ws")
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree.AddChild(Leaf{Counts: summary.Counts{Success: 1}})
		}()
	}
	wg.Wait()
	if tree.Len() != 32 || tree.Aggregate().Success != 32 {
		t.Errorf("lost inserts: len=%d agg=%+v", tree.Len(), tree.Aggregate())
	}
}
