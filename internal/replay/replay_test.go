package replay

import (
	"testing"

	"valkeysnap/internal/command"
)

func TestBuildArgsFlattensVerbAndArgs(t *testing.T) {
	cmd := command.Command{
		Verb: "SET",
		Args: [][]byte{[]byte("key"), []byte("value")},
	}
	args := buildArgs(cmd)
	if len(args) != 3 {
		t.Fatalf("got %d args, want 3", len(args))
	}
	if args[0] != "SET" {
		t.Fatalf("got verb %v, want SET", args[0])
	}
	if string(args[1].([]byte)) != "key" || string(args[2].([]byte)) != "value" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildArgsEmptyArgList(t *testing.T) {
	cmd := command.Command{Verb: "PING"}
	args := buildArgs(cmd)
	if len(args) != 1 || args[0] != "PING" {
		t.Fatalf("unexpected args: %v", args)
	}
}
