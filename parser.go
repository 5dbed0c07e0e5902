package es5

// Parser is a recursive-descent parser with one token of real lookahead
// (curr/peek) on top of the Lexer; the regex-reinterpretation path keeps
// its own mark per buffered token so it can rewind past whichever one of
// the two is still the live `/`.
type Parser struct {
	lex *Lexer
	b   Builder

	curr, peek         Token
	currNL, peekNL     bool
	currMark, peekMark cursor

	inForInit bool
}

func NewParser(src string, careFutureReserved bool) *Parser {
	p := &Parser{lex: NewLexer(src, careFutureReserved)}
	p.curr, p.currNL, p.currMark = p.rawNext()
	p.peek, p.peekNL, p.peekMark = p.rawNext()
	return p
}

// ParseProgram lexes and parses src in one call.
func ParseProgram(src string, careFutureReserved bool) (*Program, error) {
	return NewParser(src, careFutureReserved).parseProgram()
}

// rawNext pulls the next non-NEWLINE token from the lexer, reporting
// whether a NEWLINE was skipped along the way and the lexer's mark at
// the point that token was scanned, which reinterpretAsRegExp needs to
// rewind to later.
func (p *Parser) rawNext() (Token, bool, cursor) {
	nl := false
	for {
		tok := p.lex.Next()
		if tok.Type == NEWLINE {
			nl = true
			continue
		}
		return tok, nl, p.lex.mark
	}
}

func (p *Parser) next() {
	p.curr, p.currNL, p.currMark = p.peek, p.peekNL, p.peekMark
	p.peek, p.peekNL, p.peekMark = p.rawNext()
}

// reinterpretAsRegExp is called from primary-expression parsing when curr
// is DIV or DIV_ASSIGN: a regex is grammatically valid there and nowhere
// else. It rewinds the lexer to curr's own start -- undoing the
// lookahead that already scanned past it into peek -- re-lexes the
// literal, and refills curr/peek from the new position.
func (p *Parser) reinterpretAsRegExp() Token {
	p.lex.mark = p.currMark
	tok := p.lex.LexRegExp()
	p.curr, p.currNL, p.currMark = p.rawNext()
	p.peek, p.peekNL, p.peekMark = p.rawNext()
	return tok
}

// consumeStatementSemicolon implements ASI: it succeeds when the next
// token is SEMICOLON (consumed), RBRACE, EOF, or a newline precedes the
// next token; otherwise the statement is malformed.
func (p *Parser) consumeStatementSemicolon() error {
	if p.curr.Type == SEMICOLON {
		p.next()
		return nil
	}
	if p.curr.Type == RBRACE || p.curr.Type == EOF {
		return nil
	}
	if p.currNL {
		return nil
	}
	return unexpectedToken(p.curr, "; or newline")
}

// ---- statements ----

func (p *Parser) parseProgram() (*Program, error) {
	pos := p.curr.Position
	var body []Node
	for p.curr.Type != EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	return &Program{base: p.b.node(pos), Body: body}, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	pos := p.curr.Position
	if p.curr.Type != LBRACE {
		return nil, unexpectedToken(p.curr, "{")
	}
	p.next()
	var stmts []Node
	for p.curr.Type != RBRACE && p.curr.Type != EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if p.curr.Type != RBRACE {
		return nil, unexpectedToken(p.curr, "}")
	}
	p.next()
	return &Block{base: p.b.node(pos), Statements: stmts}, nil
}

func (p *Parser) parseStatement() (Node, error) {
	switch p.curr.Type {
	case LBRACE:
		return p.parseBlock()
	case SEMICOLON:
		n := &EmptyStatement{base: p.b.node(p.curr.Position)}
		p.next()
		return n, nil
	case VAR:
		return p.parseVariableStatement()
	case IF:
		return p.parseIf()
	case FOR:
		return p.parseFor()
	case WHILE:
		return p.parseWhile()
	case DO:
		return p.parseDo()
	case CONTINUE:
		return p.parseContinueOrBreak(true)
	case BREAK:
		return p.parseContinueOrBreak(false)
	case RETURN:
		return p.parseReturn()
	case THROW:
		return p.parseThrow()
	case TRY:
		return p.parseTry()
	case WITH:
		return p.parseWith()
	case SWITCH:
		return p.parseSwitch()
	case FUNCTION:
		return p.parseFunctionDeclaration()
	case ID:
		if p.peek.Type == COLON {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (Node, error) {
	pos := p.curr.Position
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeStatementSemicolon(); err != nil {
		return nil, err
	}
	return &ExpressionStatement{base: p.b.node(pos), Expr: expr}, nil
}

func (p *Parser) parseLabeledStatement() (Node, error) {
	pos := p.curr.Position
	label := p.curr.Value
	p.next() // ID
	p.next() // ':'
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &LabeledStatement{base: p.b.node(pos), Label: label, Body: body}, nil
}

func (p *Parser) parseVariableStatement() (Node, error) {
	n, err := p.parseVariableDeclarationList()
	if err != nil {
		return nil, err
	}
	if err := p.consumeStatementSemicolon(); err != nil {
		return nil, err
	}
	return n, nil
}

// parseVariableDeclarationList parses "var a, b = 1, c" without consuming
// a trailing terminator; callers decide how to close it off (a bare
// statement wants ASI, a for-loop head wants a plain ';' or 'in').
func (p *Parser) parseVariableDeclarationList() (*VariableDeclarationList, error) {
	pos := p.curr.Position
	if p.curr.Type != VAR {
		return nil, unexpectedToken(p.curr, "var")
	}
	p.next()
	var inits []*VariableInitialization
	for {
		declPos := p.curr.Position
		if p.curr.Type != ID {
			return nil, unexpectedToken(p.curr, "identifier")
		}
		decl := &VariableDeclaration{base: p.b.node(declPos), Name: p.curr.Value}
		p.next()
		var value Node
		if p.curr.Type == ASSIGN {
			p.next()
			v, err := p.parseAssignExpression()
			if err != nil {
				return nil, err
			}
			value = v
		}
		inits = append(inits, &VariableInitialization{base: p.b.node(declPos), Decl: decl, Value: value})
		if p.curr.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	return &VariableDeclarationList{base: p.b.node(pos), Inits: inits}, nil
}

func (p *Parser) parseIf() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	n := &If{base: p.b.node(pos), Cond: cond, Then: then}
	if p.curr.Type == ELSE {
		p.next()
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		n.Else, n.HasElse = els, true
	} else {
		n.Else = &EmptyStatement{base: p.b.node(p.curr.Position)}
	}
	return n, nil
}

func (p *Parser) parseWhile() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &While{base: p.b.node(pos), Cond: cond, Body: body}, nil
}

func (p *Parser) parseDo() (Node, error) {
	pos := p.curr.Position
	p.next()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != WHILE {
		return nil, unexpectedToken(p.curr, "while")
	}
	p.next()
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	if err := p.consumeStatementSemicolon(); err != nil {
		return nil, err
	}
	return &Do{base: p.b.node(pos), Body: body, Cond: cond}, nil
}

func (p *Parser) parseContinueOrBreak(isContinue bool) (Node, error) {
	pos := p.curr.Position
	p.next()
	label := ""
	if !p.currNL && p.curr.Type == ID {
		label = p.curr.Value
		p.next()
	}
	if err := p.consumeStatementSemicolon(); err != nil {
		return nil, err
	}
	if isContinue {
		return &Continue{base: p.b.node(pos), Label: label}, nil
	}
	return &Break{base: p.b.node(pos), Label: label}, nil
}

func (p *Parser) parseReturn() (Node, error) {
	pos := p.curr.Position
	p.next()
	var value Node = &LiteralUndefined{base: p.b.node(pos)}
	if !p.currNL && p.curr.Type != SEMICOLON && p.curr.Type != RBRACE && p.curr.Type != EOF {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.consumeStatementSemicolon(); err != nil {
		return nil, err
	}
	return &Return{base: p.b.node(pos), Value: value}, nil
}

func (p *Parser) parseThrow() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.currNL {
		return nil, syntaxError(pos, p.curr, "throw-newline-value")
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeStatementSemicolon(); err != nil {
		return nil, err
	}
	return &Throw{base: p.b.node(pos), Expr: expr}, nil
}

func (p *Parser) parseTry() (Node, error) {
	pos := p.curr.Position
	p.next()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &Try{base: p.b.node(pos), Body: body}
	if p.curr.Type == CATCH {
		catchPos := p.curr.Position
		p.next()
		if p.curr.Type != LPAREN {
			return nil, unexpectedToken(p.curr, "(")
		}
		p.next()
		if p.curr.Type != ID {
			return nil, unexpectedToken(p.curr, "identifier")
		}
		decl := &Parameter{base: p.b.node(p.curr.Position), Name: p.curr.Value}
		p.next()
		if p.curr.Type != RPAREN {
			return nil, unexpectedToken(p.curr, ")")
		}
		p.next()
		cbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		n.Catch = &Catch{base: p.b.node(catchPos), Decl: decl, Body: cbody}
	}
	if p.curr.Type == FINALLY {
		p.next()
		fbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		n.Finally = fbody
	}
	if n.Catch == nil && n.Finally == nil {
		return nil, syntaxError(pos, p.curr, "try-without-handlers")
	}
	return n, nil
}

func (p *Parser) parseWith() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	obj, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &With{base: p.b.node(pos), Obj: obj, Body: body}, nil
}

func (p *Parser) parseSwitch() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	key, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	if p.curr.Type != LBRACE {
		return nil, unexpectedToken(p.curr, "{")
	}
	p.next()
	var cases []Node
	haveDefault := false
	for p.curr.Type != RBRACE && p.curr.Type != EOF {
		switch p.curr.Type {
		case CASE:
			c, err := p.parseCase()
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		case DEFAULT:
			if haveDefault {
				return nil, syntaxError(p.curr.Position, p.curr, "duplicate default")
			}
			haveDefault = true
			d, err := p.parseDefault()
			if err != nil {
				return nil, err
			}
			cases = append(cases, d)
		default:
			return nil, unexpectedToken(p.curr, "case or default")
		}
	}
	if p.curr.Type != RBRACE {
		return nil, unexpectedToken(p.curr, "}")
	}
	p.next()
	return &Switch{base: p.b.node(pos), Key: key, Cases: cases}, nil
}

func (p *Parser) parseCase() (Node, error) {
	pos := p.curr.Position
	p.next()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != COLON {
		return nil, unexpectedToken(p.curr, ":")
	}
	p.next()
	body, err := p.parseCaseBody()
	if err != nil {
		return nil, err
	}
	return &Case{base: p.b.node(pos), Expr: expr, Body: body}, nil
}

func (p *Parser) parseDefault() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != COLON {
		return nil, unexpectedToken(p.curr, ":")
	}
	p.next()
	body, err := p.parseCaseBody()
	if err != nil {
		return nil, err
	}
	return &Default{base: p.b.node(pos), Body: body}, nil
}

// parseCaseBody collects statements until the next case/default/closing
// brace; switch clauses are delimited by the next clause, not by braces
// of their own.
func (p *Parser) parseCaseBody() (*Block, error) {
	pos := p.curr.Position
	var stmts []Node
	for p.curr.Type != CASE && p.curr.Type != DEFAULT && p.curr.Type != RBRACE && p.curr.Type != EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &Block{base: p.b.node(pos), Statements: stmts}, nil
}

func (p *Parser) parseFunctionDeclaration() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != ID {
		return nil, unexpectedToken(p.curr, "identifier")
	}
	name := p.curr.Value
	p.next()
	fun, err := p.parseFunctionTail()
	if err != nil {
		return nil, err
	}
	return &FunctionDeclaration{base: p.b.node(pos), Name: name, Fun: fun}, nil
}

// parseFunctionTail parses "(params) { body }", shared by function
// declarations and function expressions once FUNCTION and an optional
// name have already been consumed.
func (p *Parser) parseFunctionTail() (*Fun, error) {
	pos := p.curr.Position
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	var params []*Parameter
	for p.curr.Type != RPAREN {
		if p.curr.Type != ID {
			return nil, unexpectedToken(p.curr, "identifier")
		}
		params = append(params, &Parameter{base: p.b.node(p.curr.Position), Name: p.curr.Value})
		p.next()
		if p.curr.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Fun{base: p.b.node(pos), Params: params, Body: body}, nil
}

// ---- for / for-in ----

func (p *Parser) parseFor() (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()

	var (
		init Node
		err  error
	)
	switch {
	case p.curr.Type == VAR:
		init, err = p.parseVariableDeclarationList()
	case p.curr.Type != SEMICOLON:
		saved := p.inForInit
		p.inForInit = true
		init, err = p.parseExpression()
		p.inForInit = saved
	}
	if err != nil {
		return nil, err
	}

	if p.curr.Type == IN {
		lhs, err := p.forInLHS(init)
		if err != nil {
			return nil, err
		}
		p.next()
		obj, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curr.Type != RPAREN {
			return nil, unexpectedToken(p.curr, ")")
		}
		p.next()
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &ForIn{base: p.b.node(pos), LHS: lhs, Obj: obj, Body: body}, nil
	}

	if p.curr.Type != SEMICOLON {
		return nil, unexpectedToken(p.curr, ";")
	}
	p.next()
	var cond Node = &LiteralBool{base: p.b.node(p.curr.Position), Value: true}
	if p.curr.Type != SEMICOLON {
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if p.curr.Type != SEMICOLON {
		return nil, unexpectedToken(p.curr, ";")
	}
	p.next()
	var update Node
	if p.curr.Type != RPAREN {
		update, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &For{base: p.b.node(pos), Init: init, Cond: cond, Update: update, Body: body}, nil
}

// forInLHS validates and narrows a for-in head: a var declaration list
// must declare exactly one name; a bare expression must be a VariableUse
// or a PropertyAccess.
func (p *Parser) forInLHS(init Node) (Node, error) {
	switch n := init.(type) {
	case *VariableDeclarationList:
		if len(n.Inits) != 1 {
			return nil, syntaxError(p.curr.Position, p.curr, "bad for-in LHS")
		}
		return n, nil
	case *VariableUse, *PropertyAccess:
		return n, nil
	default:
		return nil, syntaxError(p.curr.Position, p.curr, "bad for-in LHS")
	}
}

// ---- expressions ----

func (p *Parser) parseExpression() (Node, error) {
	return p.parseSequence()
}

func (p *Parser) parseSequence() (Node, error) {
	pos := p.curr.Position
	first, err := p.parseAssignExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != COMMA {
		return first, nil
	}
	exprs := []Node{first}
	for p.curr.Type == COMMA {
		p.next()
		e, err := p.parseAssignExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &Sequence{base: p.b.node(pos), Exprs: exprs}, nil
}

// assignOps maps a compound-assignment token to its operator text with
// the trailing '=' dropped; plain '=' maps to the empty string.
var assignOps = map[Kind]string{
	ASSIGN:      "",
	MUL_ASSIGN:  "*",
	DIV_ASSIGN:  "/",
	MOD_ASSIGN:  "%",
	ADD_ASSIGN:  "+",
	SUB_ASSIGN:  "-",
	SHL_ASSIGN:  "<<",
	SHR_ASSIGN:  ">>",
	USHR_ASSIGN: ">>>",
	BAND_ASSIGN: "&",
	BXOR_ASSIGN: "^",
	BOR_ASSIGN:  "|",
}

func (p *Parser) parseAssignExpression() (Node, error) {
	pos := p.curr.Position
	left, err := p.parseConditionalExpression()
	if err != nil {
		return nil, err
	}
	op, ok := assignOps[p.curr.Type]
	if !ok {
		return left, nil
	}
	switch left.(type) {
	case *VariableUse, *PropertyAccess:
	default:
		return nil, syntaxError(pos, p.curr, "invalid assignment target")
	}
	p.next()
	right, err := p.parseAssignExpression()
	if err != nil {
		return nil, err
	}
	return &Assignment{base: p.b.node(pos), LHS: left, Op: op, RHS: right}, nil
}

func (p *Parser) parseConditionalExpression() (Node, error) {
	cond, err := p.parseBinaryExpression(1)
	if err != nil {
		return nil, err
	}
	if p.curr.Type != QUESTION {
		return cond, nil
	}
	pos := p.curr.Position
	p.next()
	then, err := p.parseAssignExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != COLON {
		return nil, unexpectedToken(p.curr, ":")
	}
	p.next()
	els, err := p.parseAssignExpression()
	if err != nil {
		return nil, err
	}
	return &Conditional{base: p.b.node(pos), Cond: cond, Then: then, Else: els}, nil
}

// binaryLevels/binarySymbols implement the precedence-climbing table for
// levels 1..10; IN is omitted from consideration while inForInit is set,
// so a for-loop head's "in" terminator is never mistaken for the binary
// operator.
var binaryLevels = map[Kind]int{
	OR:  1,
	AND: 2,
	BOR: 3, BXOR: 4, BAND: 5,
	EQ: 6, NE: 6, SEQ: 6, SNE: 6,
	LT: 7, GT: 7, LE: 7, GE: 7, INSTANCEOF: 7, IN: 7,
	SHL: 8, SHR: 8, USHR: 8,
	ADD: 9, SUB: 9,
	MUL: 10, DIV: 10, MOD: 10,
}

var binarySymbols = map[Kind]string{
	OR: "||", AND: "&&", BOR: "|", BXOR: "^", BAND: "&",
	EQ: "==", NE: "!=", SEQ: "===", SNE: "!==",
	LT: "<", GT: ">", LE: "<=", GE: ">=", INSTANCEOF: "instanceof", IN: "in",
	SHL: "<<", SHR: ">>", USHR: ">>>",
	ADD: "+", SUB: "-",
	MUL: "*", DIV: "/", MOD: "%",
}

func (p *Parser) parseBinaryExpression(minLevel int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.curr.Type == IN && p.inForInit {
			return left, nil
		}
		level, ok := binaryLevels[p.curr.Type]
		if !ok || level < minLevel {
			return left, nil
		}
		op, pos := binarySymbols[p.curr.Type], p.curr.Position
		p.next()
		right, err := p.parseBinaryExpression(level + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{base: p.b.node(pos), Op: op, LHS: left, RHS: right}
	}
}

// prefixOps maps a prefix-operator token to its Op text. Arithmetic
// prefix operators get a "prefix" marker so later passes (the resolver's
// operator lookup, the printer) can tell a prefix "+"/"-"/"++"/"--" apart
// from the binary/postfix forms that reuse the same token kinds.
var prefixOps = map[Kind]string{
	DELETE: "delete", VOID: "void", TYPEOF: "typeof",
	TILDE: "~", NOT: "!",
	INCR: "prefix++", DECR: "prefix--", ADD: "prefix+", SUB: "prefix-",
}

func (p *Parser) parseUnary() (Node, error) {
	op, ok := prefixOps[p.curr.Type]
	if !ok {
		return p.parsePostfix()
	}
	pos := p.curr.Position
	p.next()
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Prefix{base: p.b.node(pos), Op: op, Expr: expr}, nil
}

// parsePostfix attaches a postfix ++/-- to a left-hand-side expression,
// but only when no newline precedes the operator (the restricted
// production ASI relies on for "a=b\n++c" to parse as two statements).
func (p *Parser) parsePostfix() (Node, error) {
	expr, err := p.parseLeftHandSide()
	if err != nil {
		return nil, err
	}
	if !p.currNL && (p.curr.Type == INCR || p.curr.Type == DECR) {
		op, pos := "++", p.curr.Position
		if p.curr.Type == DECR {
			op = "--"
		}
		p.next()
		return &Postfix{base: p.b.node(pos), Op: op, Expr: expr}, nil
	}
	return expr, nil
}

func (p *Parser) parseLeftHandSide() (Node, error) {
	var (
		expr Node
		err  error
	)
	if p.curr.Type == NEW {
		expr, err = p.parseNewExpr()
	} else {
		expr, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for {
		switch p.curr.Type {
		case DOT:
			expr, err = p.parseDotAccess(expr)
		case LBRACKET:
			expr, err = p.parseBracketAccess(expr)
		case LPAREN:
			expr, err = p.parseCallArgs(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseNewExpr consumes NEW, a primary (or a nested `new`), and the
// access chain on the target -- but only one call-paren list, which
// belongs to this `new`. Any further call-parens are picked up by the
// access/call loop in parseLeftHandSide, on the New node as a whole.
func (p *Parser) parseNewExpr() (Node, error) {
	pos := p.curr.Position
	p.next()
	var (
		target Node
		err    error
	)
	if p.curr.Type == NEW {
		target, err = p.parseNewExpr()
	} else {
		target, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
loop:
	for {
		switch p.curr.Type {
		case DOT:
			target, err = p.parseDotAccess(target)
		case LBRACKET:
			target, err = p.parseBracketAccess(target)
		default:
			break loop
		}
		if err != nil {
			return nil, err
		}
	}
	var args []Node
	if p.curr.Type == LPAREN {
		if args, err = p.parseArguments(); err != nil {
			return nil, err
		}
	}
	return &New{base: p.b.node(pos), Target: target, Args: args}, nil
}

// parseDotAccess rewrites ".id" to PropertyAccess{receiver, ["id"]}: the
// selector becomes a quoted LiteralString rather than a distinct
// dot-access node.
func (p *Parser) parseDotAccess(receiver Node) (Node, error) {
	pos := p.curr.Position
	p.next()
	if p.curr.Type != ID {
		return nil, unexpectedToken(p.curr, "identifier")
	}
	sel := &LiteralString{base: p.b.node(p.curr.Position), Raw: `"` + p.curr.Value + `"`}
	p.next()
	return &PropertyAccess{base: p.b.node(pos), Receiver: receiver, Selector: sel}, nil
}

func (p *Parser) parseBracketAccess(receiver Node) (Node, error) {
	pos := p.curr.Position
	p.next()
	sel, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != RBRACKET {
		return nil, unexpectedToken(p.curr, "]")
	}
	p.next()
	return &PropertyAccess{base: p.b.node(pos), Receiver: receiver, Selector: sel}, nil
}

func (p *Parser) parseCallArgs(target Node) (Node, error) {
	pos := p.curr.Position
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return &Call{base: p.b.node(pos), Target: target, Args: args}, nil
}

func (p *Parser) parseArguments() ([]Node, error) {
	if p.curr.Type != LPAREN {
		return nil, unexpectedToken(p.curr, "(")
	}
	p.next()
	var args []Node
	for p.curr.Type != RPAREN {
		arg, err := p.parseAssignExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curr.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	if p.curr.Type != RPAREN {
		return nil, unexpectedToken(p.curr, ")")
	}
	p.next()
	return args, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	pos := p.curr.Position
	switch p.curr.Type {
	case NUMBER:
		n := &LiteralNumber{base: p.b.node(pos), Raw: p.curr.Value}
		p.next()
		return n, nil
	case STRING:
		n := &LiteralString{base: p.b.node(pos), Raw: p.curr.Value}
		p.next()
		return n, nil
	case TRUE, FALSE:
		n := &LiteralBool{base: p.b.node(pos), Value: p.curr.Type == TRUE}
		p.next()
		return n, nil
	case NULL:
		n := &LiteralNull{base: p.b.node(pos)}
		p.next()
		return n, nil
	case THIS:
		n := &This{base: p.b.node(pos)}
		p.next()
		return n, nil
	case ID:
		n := &VariableUse{base: p.b.node(pos), Name: p.curr.Value}
		p.next()
		return n, nil
	case LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curr.Type != RPAREN {
			return nil, unexpectedToken(p.curr, ")")
		}
		p.next()
		return expr, nil
	case LBRACKET:
		return p.parseArrayInitializer()
	case LBRACE:
		return p.parseObjectInitializer()
	case FUNCTION:
		return p.parseFunctionExpr()
	case DIV, DIV_ASSIGN:
		tok := p.reinterpretAsRegExp()
		if tok.Type == ERROR {
			return nil, p.lex.Err()
		}
		return &RegExpLiteral{base: p.b.node(tok.Position), Raw: tok.Value}, nil
	default:
		return nil, unexpectedToken(p.curr, "expression")
	}
}

func (p *Parser) parseFunctionExpr() (Node, error) {
	pos := p.curr.Position
	p.next()
	name := ""
	if p.curr.Type == ID {
		name = p.curr.Value
		p.next()
	}
	fun, err := p.parseFunctionTail()
	if err != nil {
		return nil, err
	}
	if name == "" {
		fun.base = p.b.node(pos)
		return fun, nil
	}
	return &NamedFunction{base: p.b.node(pos), Name: name, Fun: fun}, nil
}

func (p *Parser) parseArrayInitializer() (Node, error) {
	pos := p.curr.Position
	p.next()
	var elements []*ArrayElement
	index := 0
	for p.curr.Type != RBRACKET {
		if p.curr.Type == COMMA {
			bare := index == 0
			index++
			p.next()
			if bare && p.curr.Type == RBRACKET {
				// a sole leading comma with nothing before it and nothing
				// after it counts for two elided slots, not one.
				index++
			}
			continue
		}
		elemPos := p.curr.Position
		val, err := p.parseAssignExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, &ArrayElement{base: p.b.node(elemPos), Index: index, Value: val})
		index++
		if p.curr.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	if p.curr.Type != RBRACKET {
		return nil, unexpectedToken(p.curr, "]")
	}
	p.next()
	return &ArrayInitializer{base: p.b.node(pos), Length: index, Elements: elements}, nil
}

func (p *Parser) parseObjectInitializer() (Node, error) {
	pos := p.curr.Position
	p.next()
	var props []*Property
	for p.curr.Type != RBRACE {
		propPos := p.curr.Position
		key, err := p.parseObjectKey()
		if err != nil {
			return nil, err
		}
		if p.curr.Type != COLON {
			return nil, unexpectedToken(p.curr, ":")
		}
		p.next()
		val, err := p.parseAssignExpression()
		if err != nil {
			return nil, err
		}
		props = append(props, &Property{base: p.b.node(propPos), Name: key, Value: val})
		if p.curr.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	if p.curr.Type != RBRACE {
		return nil, unexpectedToken(p.curr, "}")
	}
	p.next()
	return &ObjectInitializer{base: p.b.node(pos), Properties: props}, nil
}

// parseObjectKey promotes an ID or NUMBER key to a quoted LiteralString,
// since Property.Name is always a LiteralString; a STRING key's token
// value is already quoted by the lexer.
func (p *Parser) parseObjectKey() (*LiteralString, error) {
	pos := p.curr.Position
	switch p.curr.Type {
	case ID:
		key := &LiteralString{base: p.b.node(pos), Raw: `"` + p.curr.Value + `"`}
		p.next()
		return key, nil
	case STRING:
		key := &LiteralString{base: p.b.node(pos), Raw: p.curr.Value}
		p.next()
		return key, nil
	case NUMBER:
		key := &LiteralString{base: p.b.node(pos), Raw: `"` + p.curr.Value + `"`}
		p.next()
		return key, nil
	default:
		return nil, unexpectedToken(p.curr, "property name")
	}
}
