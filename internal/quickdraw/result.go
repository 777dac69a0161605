package quickdraw

// Result is the outcome of fetching one label.
type Result struct {
	Label    Label
	Data     string
	Examples int
	Err      error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
