package mathovi

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type assocopt struct {
	left bool
}

// parsectx holds the settings for a parse.
type parsectx struct {
	// left indicates that chains of arithmetic operators at the same
	// precedence associate to the left. Equality always associates to the
	// right.
	left bool
}

func (p *parsectx) leftassoc(prec int) bool {
	return p.left && prec != equalsprec
}

// LeftAssociative makes chains of arithmetic operators with the same
// precedence group from the left, so that a-b-c is (a-b)-c. By default they
// group from the right.
func LeftAssociative() ParseOption {
	return assocopt{left: true}
}

// RightAssociative restores the default grouping of operator chains, for use
// after another option has set LeftAssociative.
func RightAssociative() ParseOption {
	return assocopt{left: false}
}

func (o assocopt) parseOption(p parsectx) parsectx {
	p.left = o.left
	return p
}

// ParsingPreset combines several options into one. Later options override
// earlier ones.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	return *o
}
