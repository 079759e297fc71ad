package constant

// Action is the discriminant field of every TCP request.
type Action string

const (
	// Pipeline actions. Each one triggers a full analysis run.
	ActionCluster   Action = "CLUSTER"
	ActionTopics    Action = "TOPICS"
	ActionRecommend Action = "RECOMMEND"
	ActionVisualize Action = "VISUALIZE"

	// Read actions. Served from the result store without running a pipeline.
	ActionGetClusters        Action = "GET_CLUSTERS"
	ActionGetTopics          Action = "GET_TOPICS"
	ActionGetRecommendations Action = "GET_RECOMMENDATIONS"
	ActionGetVisualization   Action = "GET_VISUALIZATION"

	// Health actions.
	ActionPing   Action = "PING"
	ActionStatus Action = "STATUS"
)

// IsPipelineAction reports whether the action runs the analysis pipeline
// and therefore competes for the per-user run lock.
func (a Action) IsPipelineAction() bool {
	switch a {
	case ActionCluster, ActionTopics, ActionRecommend, ActionVisualize:
		return true
	}
	return false
}

// OutlierClusterID is the sentinel group id for documents the clustering
// algorithm left unassigned.
const OutlierClusterID = -1

// RunEventsTopic is the in-process bus topic carrying finished-run events.
const RunEventsTopic = "analysis.run_events"
