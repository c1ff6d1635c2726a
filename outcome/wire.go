package outcome

import "io"

// Verdict channel tags. A verdict is a 4-byte tag optionally followed
// by raw message bytes; the channel is one-shot and EOF-delimited, so
// no length prefix or escaping is applied.
const (
	tagPass = "PASS"
	tagFail = "FAIL"
	tagLen  = 4
)

// systemFailure is reported when the channel yields no verdict at all.
const systemFailure = "Test system failure"

// Encode writes the result's verdict to the channel.
func Encode(w io.Writer, r Result) error {
	tag := tagFail
	if r.Kind == Passed {
		tag = tagPass
	}
	if _, err := io.WriteString(w, tag); err != nil {
		return err
	}
	if r.Message == "" {
		return nil
	}
	_, err := io.WriteString(w, r.Message)
	return err
}

// Decode interprets the full contents of the verdict channel. An empty
// buffer decodes as a failure with a system-failure message. A buffer
// whose first four bytes equal the pass tag decodes as Passed; anything
// else decodes as Failed. Bytes after the tag are the message, verbatim.
func Decode(buf []byte) Result {
	if len(buf) < 1 {
		return Result{Kind: Failed, Message: systemFailure}
	}
	r := Result{Kind: Failed}
	if len(buf) >= tagLen && string(buf[:tagLen]) == tagPass {
		r.Kind = Passed
	}
	if len(buf) > tagLen {
		r.Message = string(buf[tagLen:])
	}
	return r
}
