package ai

import "context"

// PartitionedElement is one layout element as returned by a model. Box is
// [ymin, xmin, ymax, xmax] normalized to 0..1000 with a top-left origin.
type PartitionedElement struct {
	Category   string     `json:"category"`
	Text       string     `json:"text"`
	PageNumber int        `json:"page_number"`
	Box        [4]float64 `json:"box_2d"`
}

type Partition struct {
	Elements []PartitionedElement `json:"elements"`
}

// BoxScale is the side of the normalized frame Box is expressed in.
const BoxScale = 1000

// Partitioner splits a PDF into categorized layout elements remotely.
type Partitioner interface {
	Partition(ctx context.Context, pdfPath string) (Partition, error)
}

type Noop struct{}

func (Noop) Partition(ctx context.Context, pdfPath string) (Partition, error) {
	return Partition{}, nil
}
