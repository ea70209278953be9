package rpc

import (
	"errors"
	"net/rpc"
	"testing"
)

type Echo struct{}

func (e *Echo) Say(request string, reply *string) error {
	if request == "" {
		return errors.New("nothing to say")
	}
	*reply = request
	return nil
}

func TestServerAndClient(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Run(); err != nil {
		t.Fatal(err)
	}
	defer server.Stop()

	client := NewTcpClient(server.Address(), "EchoClient")
	if err := client.Connect(); err != nil {
		t.Fatal(err)
	}

	var reply string
	if err := client.Call("Echo.Say", "hello", &reply); err != nil {
		t.Fatal(err)
	}
	if reply != "hello" {
		t.Errorf("reply = %q, want hello", reply)
	}

	err := client.Call("Echo.Say", "", &reply)
	var serverErr rpc.ServerError
	if !errors.As(err, &serverErr) || err.Error() != "nothing to say" {
		t.Errorf("remote error = %v", err)
	}

	if err := client.Disconnect(); err != nil {
		t.Fatal(err)
	}
	if err := client.Call("Echo.Say", "again", &reply); err == nil {
		t.Error("Call after Disconnect succeeded")
	}
}

func TestIsServerError(t *testing.T) {
	if !IsServerError(rpc.ServerError("no task available"), "no task available") {
		t.Error("matching server error not recognised")
	}
	if IsServerError(rpc.ServerError("no task available"), "all tasks completed") {
		t.Error("different message recognised")
	}
	if IsServerError(errors.New("no task available"), "no task available") {
		t.Error("local error recognised as a server error")
	}
}

func TestIsShutdown(t *testing.T) {
	server := NewTcpServer(&Echo{}, "127.0.0.1:0", "EchoServer")
	if err := server.Run(); err != nil {
		t.Fatal(err)
	}
	defer server.Stop()

	client := NewTcpClient(server.Address(), "EchoClient")
	if err := client.Connect(); err != nil {
		t.Fatal(err)
	}
	defer client.Disconnect()

	var reply string
	if err := client.Call("Echo.Say", "hello", &reply); IsShutdown(err) {
		t.Fatalf("live server reported as shut down: %v", err)
	}
	if IsShutdown(rpc.ServerError("nothing to say")) {
		t.Error("server error reported as shut down")
	}
	if !IsShutdown(rpc.ErrShutdown) {
		t.Error("rpc.ErrShutdown not recognised")
	}
}
