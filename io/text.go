package io

import (
	"bufio"
	"errors"
	"io"

	"github.com/ezrec/mix/word"
)

// textInput reads MIX characters from a text stream, skipping line breaks.
type textInput struct {
	reader *bufio.Reader
}

func (ti *textInput) reset(input io.Reader) {
	ti.reader = bufio.NewReader(input)
}

func (ti *textInput) next(input io.Reader) (r rune, err error) {
	if input == nil {
		err = ErrNoInput
		return
	}
	if ti.reader == nil {
		ti.reset(input)
	}

	for {
		r, _, err = ti.reader.ReadRune()
		if errors.Is(err, io.EOF) {
			err = ErrEndOfData
			return
		}
		if err != nil {
			return
		}
		if r != '\n' && r != '\r' {
			return
		}
	}
}

// skipBlock discards one block of count characters.
func (ti *textInput) skipBlock(input io.Reader, count int) (err error) {
	for range count {
		_, err = ti.next(input)
		if err != nil {
			return
		}
	}
	return
}

func seekStart(stream any) (err error) {
	if stream == nil {
		return
	}
	seeker, ok := stream.(io.Seeker)
	if !ok {
		err = ErrRewind
		return
	}
	_, err = seeker.Seek(0, io.SeekStart)
	return
}

// LineReader is an input unit reading one line of characters per block:
// the card reader, the typewriter and the paper tape reader.
type LineReader struct {
	Input io.Reader // Source of the text.
	Words int       // Words per block.

	input textInput
}

var _ Device = (*LineReader)(nil)

// NewCardReader returns a card reader for 80 column cards.
func NewCardReader(input io.Reader) *LineReader {
	return &LineReader{Input: input, Words: CARD_WORDS}
}

// NewTypewriter returns a typewriter keyboard of 70 characters per line.
func NewTypewriter(input io.Reader) *LineReader {
	return &LineReader{Input: input, Words: TYPEWRITER_WORDS}
}

// NewPaperTape returns a paper tape reader of 70 characters per block.
func NewPaperTape(input io.Reader) *LineReader {
	return &LineReader{Input: input, Words: PAPER_TAPE_WORDS}
}

func (lr *LineReader) BlockSize() int {
	return lr.Words
}

// Read stores the characters of one block into bytes 1..5 of each word.
// The signs of the words are unchanged.
func (lr *LineReader) Read(pos int, block []word.Word) (err error) {
	for n := range len(block) * word.BYTES {
		var r rune
		r, err = lr.input.next(lr.Input)
		if err != nil {
			return
		}
		block[n/word.BYTES] = block[n/word.BYTES].SetByte(n%word.BYTES+1, word.Encode(r))
	}
	return
}

func (lr *LineReader) Write(pos int, block []word.Word) error {
	return ErrDirection
}

// Control on a reader does nothing.
func (lr *LineReader) Control(m int, pos int) error {
	return nil
}

func (lr *LineReader) Rewind() (err error) {
	err = seekStart(lr.Input)
	if err != nil {
		return
	}
	lr.input.reader = nil
	return
}

// LineWriter is an output unit writing one line of characters per block:
// the line printer and the card punch.
type LineWriter struct {
	Output io.Writer // Destination of the text.
	Words  int       // Words per block.
	ASCII  bool      // Write Δ, Σ and Π as '!', '[' and ']'.
	Page   bool      // IOC 0 starts a new page.
}

var _ Device = (*LineWriter)(nil)

// NewLinePrinter returns a line printer of 120 characters per line.
func NewLinePrinter(output io.Writer) *LineWriter {
	return &LineWriter{Output: output, Words: PRINTER_WORDS, Page: true}
}

// NewCardPunch returns a card punch writing 80 column cards.
func NewCardPunch(output io.Writer) *LineWriter {
	return &LineWriter{Output: output, Words: CARD_WORDS, ASCII: true}
}

func (lw *LineWriter) BlockSize() int {
	return lw.Words
}

func (lw *LineWriter) Read(pos int, block []word.Word) error {
	return ErrDirection
}

// Write prints the characters of one block followed by a newline.
func (lw *LineWriter) Write(pos int, block []word.Word) (err error) {
	if lw.Output == nil {
		err = ErrNoOutput
		return
	}

	line := make([]byte, 0, len(block)*word.BYTES+1)
	for _, w := range block {
		for _, b := range w.Bytes() {
			if lw.ASCII {
				line = append(line, word.DecodeASCII(b))
			} else {
				line = append(line, string(word.Decode(b))...)
			}
		}
	}
	line = append(line, '\n')

	_, err = lw.Output.Write(line)
	return
}

// Control with m = 0 ejects the page of a printer.
func (lw *LineWriter) Control(m int, pos int) (err error) {
	if lw.Output == nil {
		err = ErrNoOutput
		return
	}
	if lw.Page && m == 0 {
		_, err = lw.Output.Write([]byte{'\f'})
	}
	return
}

func (lw *LineWriter) Rewind() error {
	return nil
}
