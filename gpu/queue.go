// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// Queue is an ordered list of passes submitted together.
type Queue struct {
	passes []*Pass
}

// Add appends p to the queue.
func (q *Queue) Add(p ...*Pass) {
	q.passes = append(q.passes, p...)
}

// Len returns the number of queued passes.
func (q *Queue) Len() int {
	return len(q.passes)
}

// Reset empties the queue, discarding the commands of its passes.
func (q *Queue) Reset() {
	for _, p := range q.passes {
		p.Reset()
	}
	q.passes = q.passes[:0]
}
