package vt220

type parserState int

const (
	ground parserState = iota
	escState
	escIntermediate
	csiEntry
	csiParam
	csiIntermediate
	csiIgnore
	oscString
	oscEscape
	dcsEntry
	dcsParam
	dcsIntermediate
	dcsPassthrough
	dcsEscape
	dcsIgnore
)

const (
	maxParams     = 16
	maxParamValue = 65535
	maxStringLen  = 4096
)

// Parser is the escape sequence state machine. It consumes one character
// at a time and reports completed Sequences through the emit callback.
// Partial sequences persist across calls, so input split at arbitrary
// byte boundaries resumes correctly. Malformed input never corrupts the
// parser; it degrades to ignore-and-resync.
type Parser struct {
	state parserState
	emit  func(Sequence)

	private      rune
	intermediate []rune
	params       []int
	param        int
	hasParam     bool

	str []rune
}

// NewParser creates a parser in the Ground state. Every completed
// sequence is passed to emit.
func NewParser(emit func(Sequence)) *Parser {
	return &Parser{emit: emit}
}

// Advance feeds one character into the state machine.
func (p *Parser) Advance(r rune) {
	switch p.state {
	case ground:
		p.advanceGround(r)
	case escState:
		p.advanceEscape(r)
	case escIntermediate:
		p.advanceEscapeIntermediate(r)
	case csiEntry, csiParam, csiIntermediate, csiIgnore:
		p.advanceCSI(r)
	case oscString:
		p.advanceOSC(r)
	case oscEscape:
		p.advanceOSCEscape(r)
	case dcsEntry, dcsParam, dcsIntermediate, dcsIgnore:
		p.advanceDCS(r)
	case dcsPassthrough:
		p.advanceDCSPassthrough(r)
	case dcsEscape:
		p.advanceDCSEscape(r)
	}
}

// enterEscape discards any partially built sequence. ESC from any state
// resynchronizes the machine.
func (p *Parser) enterEscape() {
	p.state = escState
	p.clear()
}

func (p *Parser) clear() {
	p.private = 0
	p.intermediate = p.intermediate[:0]
	p.params = p.params[:0]
	p.param = 0
	p.hasParam = false
	p.str = p.str[:0]
}

func (p *Parser) advanceGround(r rune) {
	switch {
	case r == 0x1b:
		p.enterEscape()
	case r < 0x20:
		p.emit(Execute(r))
	case r == 0x7f:
		// DEL is ignored on input
	default:
		p.emit(Print(r))
	}
}

// executeControl handles a C0 byte encountered inside a sequence: CAN and
// SUB abort to Ground, ESC restarts, anything else executes immediately
// without disturbing the collected state.
func (p *Parser) executeControl(r rune) {
	switch r {
	case 0x18, 0x1a:
		p.state = ground
	case 0x1b:
		p.enterEscape()
	default:
		p.emit(Execute(r))
	}
}

func (p *Parser) advanceEscape(r rune) {
	switch {
	case r < 0x20:
		p.executeControl(r)
	case r >= 0x20 && r <= 0x2f:
		p.collectIntermediate(r)
		p.state = escIntermediate
	case r == '[':
		p.state = csiEntry
	case r == ']':
		p.state = oscString
	case r == 'P':
		p.state = dcsEntry
	case r == 'X', r == '^', r == '_':
		// SOS, PM and APC strings are consumed and discarded
		p.state = oscString
		p.str = append(p.str[:0], r, ';')
	case r >= 0x30 && r <= 0x7e:
		p.dispatchESC(r)
	default:
		p.state = ground
	}
}

func (p *Parser) advanceEscapeIntermediate(r rune) {
	switch {
	case r < 0x20:
		p.executeControl(r)
	case r >= 0x20 && r <= 0x2f:
		p.collectIntermediate(r)
	case r >= 0x30 && r <= 0x7e:
		p.dispatchESC(r)
	default:
		p.state = ground
	}
}

func (p *Parser) advanceCSI(r rune) {
	switch {
	case r < 0x20:
		p.executeControl(r)
		return
	case r == 0x7f:
		return
	}

	if p.state == csiIgnore {
		if r >= 0x40 && r <= 0x7e {
			p.state = ground
		}
		return
	}

	switch {
	case r >= '0' && r <= '9':
		if p.state == csiIntermediate {
			p.state = csiIgnore
			return
		}
		p.collectDigit(r)
		if p.state == csiEntry {
			p.state = csiParam
		}
	case r == ';':
		if p.state == csiIntermediate {
			p.state = csiIgnore
			return
		}
		p.nextParam()
		if p.state == csiEntry {
			p.state = csiParam
		}
	case r == ':':
		// Sub-parameters (SGR underline styles et al.) are not supported;
		// swallow the rest of the sequence.
		p.state = csiIgnore
	case r >= 0x3c && r <= 0x3f:
		if p.state != csiEntry {
			p.state = csiIgnore
			return
		}
		p.private = r
		p.state = csiParam
	case r >= 0x20 && r <= 0x2f:
		p.collectIntermediate(r)
		p.state = csiIntermediate
	case r >= 0x40 && r <= 0x7e:
		p.dispatchCSI(r)
	default:
		p.state = ground
	}
}

func (p *Parser) advanceOSC(r rune) {
	switch r {
	case 0x07:
		p.dispatchOSC()
	case 0x1b:
		p.state = oscEscape
	case 0x18, 0x1a:
		p.state = ground
	default:
		if r >= 0x20 && len(p.str) < maxStringLen {
			p.str = append(p.str, r)
		}
	}
}

func (p *Parser) advanceOSCEscape(r rune) {
	if r == '\\' {
		p.dispatchOSC()
		return
	}
	// Not a string terminator: the ESC starts a fresh sequence and the
	// collected string is discarded.
	p.enterEscape()
	p.Advance(r)
}

func (p *Parser) advanceDCS(r rune) {
	switch {
	case r == 0x1b:
		p.enterEscape()
		return
	case r == 0x18 || r == 0x1a:
		p.state = ground
		return
	case r < 0x20 || r == 0x7f:
		return
	}

	if p.state == dcsIgnore {
		return
	}

	switch {
	case r >= '0' && r <= '9':
		if p.state == dcsIntermediate {
			p.state = dcsIgnore
			return
		}
		p.collectDigit(r)
		if p.state == dcsEntry {
			p.state = dcsParam
		}
	case r == ';':
		if p.state == dcsIntermediate {
			p.state = dcsIgnore
			return
		}
		p.nextParam()
		if p.state == dcsEntry {
			p.state = dcsParam
		}
	case r == ':':
		p.state = dcsIgnore
	case r >= 0x3c && r <= 0x3f:
		if p.state != dcsEntry {
			p.state = dcsIgnore
			return
		}
		p.private = r
		p.state = dcsParam
	case r >= 0x20 && r <= 0x2f:
		p.collectIntermediate(r)
		p.state = dcsIntermediate
	case r >= 0x40 && r <= 0x7e:
		p.finishParams()
		p.emit(DCS{
			Private:      p.private,
			Intermediate: cloneRunes(p.intermediate),
			Final:        r,
			Parameters:   cloneParams(p.params),
		})
		p.state = dcsPassthrough
	default:
		p.state = ground
	}
}

func (p *Parser) advanceDCSPassthrough(r rune) {
	switch r {
	case 0x1b:
		p.state = dcsEscape
	case 0x18, 0x1a:
		p.emit(DCSEndOfData{})
		p.state = ground
	default:
		p.emit(DCSData(r))
	}
}

func (p *Parser) advanceDCSEscape(r rune) {
	if r == '\\' {
		p.emit(DCSEndOfData{})
		p.state = ground
		return
	}
	p.emit(DCSEndOfData{})
	p.enterEscape()
	p.Advance(r)
}

func (p *Parser) collectIntermediate(r rune) {
	if len(p.intermediate) < 4 {
		p.intermediate = append(p.intermediate, r)
	}
}

func (p *Parser) collectDigit(r rune) {
	p.hasParam = true
	p.param = p.param*10 + int(r-'0')
	if p.param > maxParamValue {
		p.param = maxParamValue
	}
}

func (p *Parser) nextParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.param)
	}
	p.param = 0
	p.hasParam = true
}

func (p *Parser) finishParams() {
	if p.hasParam && len(p.params) < maxParams {
		p.params = append(p.params, p.param)
	}
}

func (p *Parser) dispatchESC(final rune) {
	p.emit(ESC{
		Intermediate: cloneRunes(p.intermediate),
		Final:        final,
	})
	p.state = ground
}

func (p *Parser) dispatchCSI(final rune) {
	p.finishParams()
	p.emit(CSI{
		Private:      p.private,
		Intermediate: cloneRunes(p.intermediate),
		Final:        final,
		Parameters:   cloneParams(p.params),
	})
	p.state = ground
}

func (p *Parser) dispatchOSC() {
	p.emit(OSC{Payload: cloneRunes(p.str)})
	p.state = ground
}

func cloneRunes(rs []rune) []rune {
	if len(rs) == 0 {
		return nil
	}
	out := make([]rune, len(rs))
	copy(out, rs)
	return out
}

func cloneParams(ps []int) []int {
	if len(ps) == 0 {
		return nil
	}
	out := make([]int, len(ps))
	copy(out, ps)
	return out
}
