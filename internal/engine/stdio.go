/*
 * COMET - Stdio-backed supervisor call handler.
 *
 * Copyright 2026, The COMET Project Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package engine

import (
	"bufio"
	"fmt"
	"io"
)

// StdioSVC is the default SVCHandler: SVC 1 reads one line from In,
// prompting with "IN> "; SVC 2 writes to Out, prefixed with "OUT> ".
// Grounded on the teacher's channel-device Attach/Detach pattern of a
// small interface wired to one concrete implementation, adapted here
// in place of disk/tape/card devices since COMET has only the two
// SVCs.
type StdioSVC struct {
	In     *bufio.Reader
	Out    io.Writer
	Prompt io.Writer // where "IN> " is written; typically stdout
}

// NewStdioSVC wraps in/out/prompt as a StdioSVC.
func NewStdioSVC(in io.Reader, out, prompt io.Writer) *StdioSVC {
	return &StdioSVC{In: bufio.NewReader(in), Out: out, Prompt: prompt}
}

func (s *StdioSVC) Input() (line string, eof bool) {
	if s.Prompt != nil {
		fmt.Fprint(s.Prompt, "IN> ")
	}
	text, err := s.In.ReadString('\n')
	if err != nil && text == "" {
		return "", true
	}
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text, false
}

func (s *StdioSVC) Output(text string) {
	fmt.Fprintf(s.Out, "OUT> %s\n", text)
}
