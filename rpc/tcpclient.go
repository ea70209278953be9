package rpc

import (
	"errors"
	"fmt"
	"io"
	"net/rpc"

	"github.com/BrugadaSyndrome/bslogger"
)

// TcpClient calls methods on a TcpServer. It is safe for concurrent use once connected.
type TcpClient struct {
	client        *rpc.Client
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

func NewTcpClient(serverAddress string, name string) TcpClient {
	return TcpClient{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
	}
}

func (tc *TcpClient) Connect() error {
	if tc.client != nil {
		tc.Logger.Warning(fmt.Sprintf("Already connected to server at address %s", tc.serverAddress))
		return nil
	}

	var err error
	tc.client, err = rpc.Dial("tcp", tc.serverAddress)
	if err != nil {
		tc.Logger.Error(fmt.Sprintf("Connecting to server at address %s", tc.serverAddress))
		return err
	}
	tc.Logger.Info(fmt.Sprintf("Connected to server at: %s", tc.serverAddress))
	return nil
}

// Call invokes method on the server. Errors returned by the remote method come back as
// rpc.ServerError and are not logged, callers decide whether they are expected.
func (tc *TcpClient) Call(method string, request interface{}, reply interface{}) error {
	if tc.client == nil {
		message := fmt.Sprintf("Not connected to server at address %s : method %s", tc.serverAddress, method)
		tc.Logger.Error(message)
		return errors.New(message)
	}

	err := tc.client.Call(method, request, reply)
	if err != nil {
		var serverErr rpc.ServerError
		if !errors.As(err, &serverErr) {
			tc.Logger.Error(fmt.Sprintf("Calling server at address: %s, method: %s - %s", tc.serverAddress, method, err))
		}
		return err
	}
	tc.Logger.Debug(fmt.Sprintf("Calling server [%s] %s", tc.serverAddress, method))
	return nil
}

func (tc *TcpClient) Disconnect() error {
	if tc.client == nil {
		message := fmt.Sprintf("Already disconnected from server at address %s", tc.serverAddress)
		tc.Logger.Warning(message)
		return errors.New(message)
	}

	err := tc.client.Close()
	tc.client = nil
	if err != nil {
		tc.Logger.Error(fmt.Sprintf("Disconnecting from server at address %s", tc.serverAddress))
		return err
	}
	tc.Logger.Info(fmt.Sprintf("Disconnected from server at %s", tc.serverAddress))
	return nil
}

// IsServerError reports whether err is the remote method failing with exactly message.
func IsServerError(err error, message string) bool {
	var serverErr rpc.ServerError
	return errors.As(err, &serverErr) && string(serverErr) == message
}

// IsShutdown reports whether err means the connection to the server is gone.
func IsShutdown(err error) bool {
	return errors.Is(err, rpc.ErrShutdown) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
