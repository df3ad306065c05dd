package equation

// Grammar (lowest to highest precedence):
//
//	sum     = product { ('+' | '-') product }
//	product = unary { ('*' | '/') unary | <implicit> power }
//	unary   = ('+' | '-') unary | power
//	power   = primary [ '^' unary ]
//	primary = number | 'x' | const | func primary | '(' sum ')' | '|' sum '|'
//
// Implicit multiplication applies when an operand is directly followed by a
// number, x, a constant, a function, '(' or, outside of bars, '|'.

type parser struct {
	l   lexer
	cur token

	absDepth int
}

func parse(src string) (node, error) {
	p := &parser{l: lexer{s: src}}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, syntaxErr(0, "empty expression")
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, syntaxErr(p.cur.pos, "unexpected %s", p.describe())
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) describe() string {
	if p.cur.text != "" {
		return "\"" + p.cur.text + "\""
	}
	return p.cur.kind.String()
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur.kind == tokStar || p.cur.kind == tokSlash:
			op := p.cur.text[0]
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = nodeBinary{op: op, left: left, right: right}
		case p.startsImplicitOperand():
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = nodeBinary{op: '*', left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) startsImplicitOperand() bool {
	switch p.cur.kind {
	case tokNumber, tokVar, tokConst, tokFunc, tokLParen:
		return true
	case tokBar:
		return p.absDepth == 0
	default:
		return false
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			return x, nil
		}
		return nodeNeg{x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return nodeNumber{v: v}, nil
	case tokVar:
		p.next()
		return nodeVar{}, nil
	case tokConst:
		c := nodeConst{name: p.cur.text, v: p.cur.num}
		p.next()
		return c, nil
	case tokFunc:
		fn := p.cur.fn
		pos := p.cur.pos
		p.next()
		if p.cur.kind == tokEOF {
			return nil, syntaxErr(pos, "function without argument")
		}
		// The argument is a single primary, so sin(x)^2 squares the sine.
		arg, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return nodeCall{fn: fn, arg: arg}, nil
	case tokLParen:
		pos := p.cur.pos
		p.next()
		saved := p.absDepth
		p.absDepth = 0
		ex, err := p.parseSum()
		p.absDepth = saved
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, syntaxErr(pos, "expected ')'")
		}
		p.next()
		return ex, nil
	case tokBar:
		pos := p.cur.pos
		p.next()
		p.absDepth++
		ex, err := p.parseSum()
		p.absDepth--
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokBar {
			return nil, syntaxErr(pos, "expected closing '|'")
		}
		p.next()
		return nodeCall{fn: fnAbs, arg: ex}, nil
	case tokEOF:
		return nil, syntaxErr(p.cur.pos, "unexpected end of expression")
	default:
		return nil, syntaxErr(p.cur.pos, "unexpected %s", p.describe())
	}
}
