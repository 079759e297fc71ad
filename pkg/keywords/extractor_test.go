package keywords

import (
	"reflect"
	"testing"
)

func TestTopTerms(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		n     int
		want  []string
	}{
		{
			name:  "frequency ordering",
			texts: []string{"neural networks and neural models", "networks of neural layers"},
			n:     3,
			want:  []string{"neural", "networks", "models"},
		},
		{
			name:  "stopwords excluded",
			texts: []string{"the cat and the dog and the cat"},
			n:     5,
			want:  []string{"cat", "dog"},
		},
		{
			name:  "tie broken by first occurrence",
			texts: []string{"alpha beta", "beta alpha"},
			n:     2,
			want:  []string{"alpha", "beta"},
		},
		{
			name:  "short tokens dropped",
			texts: []string{"go ml ai database database"},
			n:     5,
			want:  []string{"database"},
		},
		{
			name:  "empty input",
			texts: nil,
			n:     5,
			want:  []string{},
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.TopTerms(tt.texts, tt.n)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopTerms() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopTermsDeterministic(t *testing.T) {
	texts := []string{
		"distributed systems consensus raft leader election",
		"raft log replication consensus",
		"leader failover in distributed clusters",
	}

	e := NewExtractor()
	first := e.TopTerms(texts, 10)
	for i := 0; i < 50; i++ {
		again := e.TopTerms(texts, 10)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced %v, first run produced %v", i, again, first)
		}
	}
}

func TestLabel(t *testing.T) {
	e := NewExtractor()

	label := e.Label([]string{"kubernetes deployment kubernetes scaling"}, 2)
	if label != "Kubernetes / Deployment" {
		t.Errorf("Label() = %q, want %q", label, "Kubernetes / Deployment")
	}

	if got := e.Label(nil, 3); got != "" {
		t.Errorf("Label(nil) = %q, want empty", got)
	}
}
