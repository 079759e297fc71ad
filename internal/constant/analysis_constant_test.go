package constant

import "testing"

func TestIsPipelineAction(t *testing.T) {
	tests := []struct {
		action Action
		want   bool
	}{
		{ActionCluster, true},
		{ActionTopics, true},
		{ActionRecommend, true},
		{ActionVisualize, true},
		{ActionGetClusters, false},
		{ActionGetTopics, false},
		{ActionGetRecommendations, false},
		{ActionGetVisualization, false},
		{ActionPing, false},
		{ActionStatus, false},
		{Action("BOGUS"), false},
	}

	for _, tt := range tests {
		if got := tt.action.IsPipelineAction(); got != tt.want {
			t.Errorf("IsPipelineAction(%s) = %v, want %v", tt.action, got, tt.want)
		}
	}
}
