package engine

// pathQuota counts paths emitted during one traceback run and enforces an
// upper bound on them.
//
// A limit of 0 disables the check.
type pathQuota struct {
	limit   int
	current int
}

func newPathQuota(limit int) *pathQuota {
	return &pathQuota{limit: limit}
}

// Check increments the path counter and validates it against the limit.
func (q *pathQuota) Check() error {
	q.current++
	if q.limit > 0 && q.current > q.limit {
		return NewPathLimitError(q.current, q.limit)
	}
	return nil
}

// Current returns the number of paths counted so far.
func (q *pathQuota) Current() int {
	return q.current
}
