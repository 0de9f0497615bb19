package resp

import (
	"bytes"
	"strconv"
)

// EncodeCommand renders cmd as a RESP array of bulk strings, the wire
// form every Redis/Valkey command (and this decoder's own handshake
// commands) uses.
func EncodeCommand(verb string, args ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('*')
	buf.WriteString(strconv.Itoa(1 + len(args)))
	buf.WriteString("\r\n")
	writeBulk(&buf, []byte(verb))
	for _, a := range args {
		writeBulk(&buf, a)
	}
	return buf.Bytes()
}

func writeBulk(buf *bytes.Buffer, v []byte) {
	buf.WriteByte('$')
	buf.WriteString(strconv.Itoa(len(v)))
	buf.WriteString("\r\n")
	buf.Write(v)
	buf.WriteString("\r\n")
}
