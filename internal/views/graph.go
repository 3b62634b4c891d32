package views

import (
	"github.com/rewired-gh/lookingglass/internal/logger"
	"github.com/rewired-gh/lookingglass/internal/models"
)

// Sentiment is one of five color buckets for a sentiment scalar.
type Sentiment string

const (
	StrongPositive Sentiment = "strong-positive"
	MildPositive   Sentiment = "mild-positive"
	Neutral        Sentiment = "neutral"
	MildNegative   Sentiment = "mild-negative"
	StrongNegative Sentiment = "strong-negative"
)

// sentimentColors maps buckets to the hex colors used by graph layouts.
var sentimentColors = map[Sentiment]string{
	StrongPositive: "#22c55e",
	MildPositive:   "#86efac",
	Neutral:        "#9ca3af",
	MildNegative:   "#fca5a5",
	StrongNegative: "#ef4444",
}

// SentimentBucket maps s onto the fixed five-bucket scale.
func SentimentBucket(s float64) Sentiment {
	switch {
	case s > 0.5:
		return StrongPositive
	case s > 0:
		return MildPositive
	case s == 0:
		return Neutral
	case s > -0.5:
		return MildNegative
	default:
		return StrongNegative
	}
}

// Hex returns the display color of the bucket.
func (s Sentiment) Hex() string {
	return sentimentColors[s]
}

// NodeKind distinguishes cluster nodes from narrative nodes.
type NodeKind string

const (
	NodeCluster   NodeKind = "cluster"
	NodeNarrative NodeKind = "narrative"
)

// Node is a vertex of the force-directed cluster graph.
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
	Size  int
	Color Sentiment
}

// Edge links a cluster to one of its narratives.
type Edge struct {
	Source string
	Target string
}

// Graph is the node/edge form of narrative clusters.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// BuildClusterGraph emits one node per cluster sized by its narrative count,
// one node per narrative, and one edge per membership.
//
// Narrative ids are expected to be unique across clusters (the backend issues
// narrative_<cluster>_<index>). A repeated id keeps its first node and only
// gains another edge.
func BuildClusterGraph(clusters []models.NarrativeCluster) Graph {
	var g Graph
	seen := make(map[string]bool)
	for _, c := range clusters {
		g.Nodes = append(g.Nodes, Node{
			ID:    c.ID,
			Label: c.Theme,
			Kind:  NodeCluster,
			Size:  len(c.Narratives),
			Color: SentimentBucket(c.SentimentScore),
		})
		for _, n := range c.Narratives {
			g.Edges = append(g.Edges, Edge{Source: c.ID, Target: n.ID})
			if seen[n.ID] {
				logger.Warn("Narrative %s appears in more than one cluster (also in %s)", n.ID, c.ID)
				continue
			}
			seen[n.ID] = true
			g.Nodes = append(g.Nodes, Node{
				ID:    n.ID,
				Label: n.Title,
				Kind:  NodeNarrative,
				Size:  1,
				Color: SentimentBucket(n.Sentiment),
			})
		}
	}
	return g
}

// Node returns the node with id, if present.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
