package javadoc

// lane is one of the three families of ordered tags.
type lane uint8

const (
	laneParam lane = iota
	laneThrows
	laneSee
)

// run counts consecutive pushes into one lane.
type run struct {
	lane  lane
	count int
}

// orderedTags accumulates @param, @throws and reference tags in source
// order. Parameters documented after an exception are diverted to
// invalid instead of params.
type orderedTags struct {
	params  []Expression
	throws  []*TypeReference
	see     []Expression
	invalid []*SingleNameReference
	runs    []run
}

func (o *orderedTags) record(l lane) {
	if n := len(o.runs); n > 0 && o.runs[n-1].lane == l {
		o.runs[n-1].count++
		return
	}
	o.runs = append(o.runs, run{lane: l, count: 1})
}

// pushParam appends a parameter reference. It returns false when a
// @throws tag was already seen; the reference then lands in invalid.
// Type parameters are never checked since @throws may be illegal on the
// documented declaration anyway.
func (o *orderedTags) pushParam(ref Expression) bool {
	if name, ok := ref.(*SingleNameReference); ok && len(o.throws) > 0 {
		o.invalid = append(o.invalid, name)
		return false
	}
	o.params = append(o.params, ref)
	o.record(laneParam)
	return true
}

func (o *orderedTags) pushThrows(ref *TypeReference) {
	o.throws = append(o.throws, ref)
	o.record(laneThrows)
}

func (o *orderedTags) pushSee(ref Expression) {
	o.see = append(o.see, ref)
	o.record(laneSee)
}

// count sums the run lengths of one lane.
func (o *orderedTags) count(l lane) int {
	n := 0
	for _, r := range o.runs {
		if r.lane == l {
			n += r.count
		}
	}
	return n
}

// finish moves the accumulated references into doc, splitting
// parameters into names and type parameters.
func (o *orderedTags) finish(doc *Document) {
	doc.SeeReferences = o.see
	doc.ExceptionReferences = o.throws
	doc.InvalidParameters = o.invalid
	for _, p := range o.params {
		switch ref := p.(type) {
		case *SingleNameReference:
			doc.ParamReferences = append(doc.ParamReferences, ref)
		case *SingleTypeReference:
			doc.ParamTypeParameters = append(doc.ParamTypeParameters, ref)
		}
	}
	*o = orderedTags{}
}
