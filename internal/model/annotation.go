package model

import "encoding/json"

// Task is a Label Studio task reduced to the annotations attached to it.
type Task struct {
	ID            int
	AnnotationIDs []int
}

// Annotation is a recorded labeling decision on a task. Result items stay as
// raw JSON so untouched items round-trip unchanged.
type Annotation struct {
	ID     int
	TaskID int
	Result []json.RawMessage
}
