package framework

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCapturingLogger(t *testing.T) {
	var l CapturingLogger
	l.Println("a", "b")
	l.Printf("c=%d", 3)

	assert.Equal(t, []string{"a b", "c=3"}, l.Output().Messages())
}

func TestCapturedOutputToString(t *testing.T) {
	var l CapturingLogger
	l.Println("first")
	l.Println("second")

	s := l.Output().ToString("DEBUG ")
	assert.Contains(t, s, "DEBUG [")
	assert.Contains(t, s, "] first\nDEBUG [")
	assert.Contains(t, s, "] second")
}

func TestLoggerWithPrefix(t *testing.T) {
	var l CapturingLogger
	p := LoggerWithPrefix(&l, "[x] ")
	p.Printf("hello %s", "there")
	p.Println("bye")

	assert.Equal(t, []string{"[x] hello there", "[x]  bye"}, l.Output().Messages())
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ZerologLogger(zerolog.New(&buf))
	l.Printf("probe %s", "ok")

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"message":"probe ok"`)
}

func TestNullLoggerDiscards(t *testing.T) {
	l := NullLogger()
	l.Println("ignored")
	l.Printf("ignored %d", 1)
}
