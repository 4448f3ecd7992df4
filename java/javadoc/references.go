package javadoc

import "fmt"

// createTypeReference builds a type from the last identifier group. It
// returns nil when no identifier was read.
func (p *Parser) createTypeReference(primitive bool) *TypeReference {
	n := len(p.identLengths)
	if n == 0 {
		return nil
	}
	size := p.identLengths[n-1]
	if size == 0 || size > len(p.idents) {
		return nil
	}
	return p.typeFromIdentifiers(len(p.idents)-size, size, primitive)
}

func (p *Parser) typeFromIdentifiers(from, size int, primitive bool) *TypeReference {
	tokens := make([]string, size)
	copy(tokens, p.idents[from:from+size])
	positions := make([]Span, size)
	copy(positions, p.identPos[from:from+size])
	return &TypeReference{
		Tokens:    tokens,
		Positions: positions,
		Primitive: primitive && size == 1 && isPrimitive(tokens[0]),
		Span:      Span{Start: positions[0].Start, End: positions[size-1].End},
	}
}

// createModuleTypeReference splits the last identifier group into the
// first moduleCount module segments and an optional type.
func (p *Parser) createModuleTypeReference(moduleCount int) *ModuleReference {
	module := make([]string, moduleCount)
	copy(module, p.idents[:moduleCount])
	ref := &ModuleReference{
		Module:     module,
		ModuleSpan: Span{Start: p.identPos[0].Start, End: p.identPos[moduleCount-1].End},
	}

	size := p.identLengths[len(p.identLengths)-1]
	if typeSize := size - moduleCount; typeSize >= 1 {
		ref.Type = p.typeFromIdentifiers(len(p.idents)-typeSize, typeSize, false)
		ref.Span = Span{Start: ref.ModuleSpan.Start, End: ref.Type.Span.End}
		return ref
	}
	// java.base/ names the module alone; the slash belongs to it
	p.lastIdentifierEnd++
	ref.Span = Span{Start: ref.ModuleSpan.Start, End: ref.ModuleSpan.End + 1}
	return ref
}

// createArgumentReference combines a parameter type with its array
// dimensions and optional name.
func (p *Parser) createArgumentReference(name string, dims int, varargs bool, typeRef Expression, dimEnd int, nameSpan *Span) (*ArgumentExpression, error) {
	t, ok := typeRef.(*TypeReference)
	if !ok {
		return nil, fmt.Errorf("argument type is %T: %w", typeRef, ErrMalformedInput)
	}
	end := t.Span.End
	if dims > 0 {
		t.Dims = dims
		t.Varargs = varargs
		end = dimEnd
	}
	if nameSpan != nil {
		end = nameSpan.End
	}
	return &ArgumentExpression{Name: name, Type: t, Span: Span{Start: t.Span.Start, End: end}}, nil
}

// receiverType extracts the type named by an explicit receiver. A
// module without a type cannot own members.
func receiverType(receiver Expression) (*TypeReference, error) {
	switch r := receiver.(type) {
	case nil:
		return nil, nil
	case *TypeReference:
		return r, nil
	case *ModuleReference:
		if r.Type == nil {
			return nil, errInvalidInput
		}
		return r.Type, nil
	}
	return nil, errInvalidInput
}

func (p *Parser) createFieldReference(receiver Expression) (Expression, error) {
	if _, err := receiverType(receiver); err != nil {
		return nil, err
	}
	start := p.memberStart
	if receiver == nil {
		receiver = &ImplicitTypeReference{Name: p.mainTypeName(), Span: Span{Start: p.memberStart, End: p.memberStart}}
	} else {
		start = receiver.Pos().Start
	}
	return &FieldReference{
		Name:     p.idents[0],
		Receiver: receiver,
		Span:     Span{Start: start, End: p.identPos[0].End},
		Tag:      p.tagValue,
	}, nil
}

// createMethodReference decides between a constructor and a method.
// A member named like the receiver type, or like the enclosing type
// when there is no receiver, is a constructor.
func (p *Parser) createMethodReference(receiver Expression, args []*ArgumentExpression) (Expression, error) {
	typ, err := receiverType(receiver)
	if err != nil {
		return nil, err
	}
	if len(p.identLengths) == 0 {
		return nil, fmt.Errorf("method reference without a name: %w", ErrMalformedInput)
	}
	length := p.identLengths[0]
	selector := p.idents[length-1]
	start := p.memberStart

	var recv Expression
	isConstructor := false
	if typ == nil {
		name := p.mainTypeName()
		if open := p.openType(); open != nil {
			name = open.Name
		}
		isConstructor = selector == name
		recv = &ImplicitTypeReference{Name: name, Span: Span{Start: p.memberStart, End: p.memberStart}}
	} else {
		recv = typ
		start = receiver.Pos().Start
		isConstructor = selector == typ.LastToken()
		if isConstructor && typ.Qualified() {
			for i := 0; i < length-1; i++ {
				if i >= len(typ.Tokens) || p.idents[i] != typ.Tokens[i] {
					p.report(InvalidMemberTypeQualification, Span{Start: p.identPos[0].Start, End: p.identPos[length-1].End})
					return nil, nil
				}
			}
		}
	}

	span := Span{Start: start, End: p.scan.end}
	if isConstructor {
		qualification := make([]string, length)
		copy(qualification, p.idents[:length])
		return &AllocationExpression{
			Type:          recv,
			Qualification: qualification,
			Arguments:     args,
			MemberStart:   p.memberStart,
			Span:          span,
			Tag:           p.tagValue,
		}, nil
	}
	return &MessageSend{
		Selector:  selector,
		Receiver:  recv,
		Arguments: args,
		Span:      span,
		Tag:       p.tagValue,
	}, nil
}
