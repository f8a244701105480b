package timeblock

import (
	"encoding/json"
	"fmt"
)

// BucketKind says where a group of unscheduled tasks came from.
type BucketKind int

const (
	// BucketDefault holds tasks the ordinary matcher could not place.
	BucketDefault BucketKind = iota
	// BucketTimeframe holds tasks that found no room in their timeframe.
	BucketTimeframe
	// BucketNamedBlock holds tasks that found no room in their named block.
	BucketNamedBlock
)

func (k BucketKind) String() string {
	switch k {
	case BucketDefault:
		return "default"
	case BucketTimeframe:
		return "timeframe"
	case BucketNamedBlock:
		return "block"
	default:
		return fmt.Sprintf("BucketKind(%d)", int(k))
	}
}

// MarshalText renders the kind name.
func (k BucketKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name.
func (k *BucketKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "default", "":
		*k = BucketDefault
	case "timeframe":
		*k = BucketTimeframe
	case "block":
		*k = BucketNamedBlock
	default:
		return fmt.Errorf("timeblock: unknown bucket kind %q", string(b))
	}
	return nil
}

// BucketKey identifies a bucket. The kind keeps a block literally named "_"
// apart from the default bucket.
type BucketKey struct {
	Kind  BucketKind `json:"kind" yaml:"kind"`
	Label string     `json:"label,omitempty" yaml:"label,omitempty"`
}

// DefaultBucket is where the matcher records tasks it could not place.
var DefaultBucket = BucketKey{Kind: BucketDefault}

// TimeframeBucket keys tasks left over from the named timeframe.
func TimeframeBucket(label string) BucketKey {
	return BucketKey{Kind: BucketTimeframe, Label: label}
}

// NamedBlockBucket keys tasks left over from the named block.
func NamedBlockBucket(title string) BucketKey {
	return BucketKey{Kind: BucketNamedBlock, Label: title}
}

// String is "_" for the default bucket and the label otherwise.
func (k BucketKey) String() string {
	if k.Kind == BucketDefault {
		return "_"
	}
	return k.Label
}

// Bucket is one group of tasks that could not be scheduled. A task's
// Duration holds the minutes that are still unplaced.
type Bucket struct {
	Key   BucketKey `json:"key" yaml:"key"`
	Tasks []Task    `json:"tasks" yaml:"tasks"`
}

// Unscheduled is an ordered list of buckets, in order of first use. Methods
// return new values and leave the receiver untouched.
type Unscheduled []Bucket

// Add appends tasks to the bucket for key, creating it if needed.
func (u Unscheduled) Add(key BucketKey, tasks ...Task) Unscheduled {
	out := u.clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Tasks = append(out[i].Tasks, tasks...)
			return out
		}
	}
	return append(out, Bucket{Key: key, Tasks: append([]Task(nil), tasks...)})
}

// Tasks returns the tasks recorded under key.
func (u Unscheduled) Tasks(key BucketKey) []Task {
	for _, b := range u {
		if b.Key == key {
			return b.Tasks
		}
	}
	return nil
}

// Len is the number of tasks across all buckets.
func (u Unscheduled) Len() int {
	n := 0
	for _, b := range u {
		n += len(b.Tasks)
	}
	return n
}

// Merge adds every bucket of o, in order.
func (u Unscheduled) Merge(o Unscheduled) Unscheduled {
	out := u.clone()
	for _, b := range o {
		out = out.Add(b.Key, b.Tasks...)
	}
	return out
}

// All returns every task in bucket order.
func (u Unscheduled) All() []Task {
	out := make([]Task, 0, u.Len())
	for _, b := range u {
		out = append(out, b.Tasks...)
	}
	return out
}

// MarshalJSON writes the buckets as a list, never null.
func (u Unscheduled) MarshalJSON() ([]byte, error) {
	if u == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Bucket(u))
}

func (u Unscheduled) clone() Unscheduled {
	if u == nil {
		return nil
	}
	out := make(Unscheduled, len(u))
	for i, b := range u {
		out[i] = Bucket{Key: b.Key, Tasks: append([]Task(nil), b.Tasks...)}
	}
	return out
}
