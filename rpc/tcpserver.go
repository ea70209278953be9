package rpc

import (
	"errors"
	"net"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// TcpServer exposes the exported methods of object over net/rpc on a TCP listener.
type TcpServer struct {
	address  string
	listener *net.TCPListener
	object   interface{}
	shutdown chan bool

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewTcpServer(object interface{}, address string, name string) TcpServer {
	return TcpServer{
		address:  address,
		object:   object,
		shutdown: make(chan bool, 1),
		Logger:   bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:     name,
		WG:       &sync.WaitGroup{},
	}
}

// Address is the address the server listens on, resolved once Run has been called.
func (ts *TcpServer) Address() string {
	if ts.listener == nil {
		return ts.address
	}
	return ts.listener.Addr().String()
}

func (ts *TcpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(ts.object)
	if err != nil {
		ts.Logger.Error("Registering object")
		return err
	}

	tcpAddress, err := net.ResolveTCPAddr("tcp", ts.address)
	if err != nil {
		ts.Logger.Error("Resolving tcp address " + ts.address)
		return err
	}

	ts.listener, err = net.ListenTCP("tcp", tcpAddress)
	if err != nil {
		ts.Logger.Error("Listening at address " + ts.address)
		return err
	}

	ts.WG.Add(1)
	go func() {
		defer ts.WG.Done()
		for {
			select {
			case <-ts.shutdown:
				// Server has been given the signal to shutdown
				err := ts.listener.Close()
				if err != nil {
					ts.Logger.Info("Server closed listener - " + err.Error())
				}
				return
			default:
				// Poll the listener periodically so shutdown is noticed
				ts.listener.SetDeadline(time.Now().Add(250 * time.Millisecond))
			}

			conn, err := ts.listener.Accept()
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					// Deadline timeout has occurred
					continue
				}
				// There was actually an error listening
				ts.Logger.Warning("Accepting connection at address " + ts.Address() + " - " + err.Error())
				continue
			}

			ts.Logger.Info("Server opened connection to client at address " + conn.RemoteAddr().String())
			go handler.ServeConn(conn)
		}
	}()

	ts.Logger.Info("Running server at address " + ts.Address())
	return nil
}

func (ts *TcpServer) Stop() error {
	ts.Logger.Info("Shutting down server at address " + ts.Address())
	close(ts.shutdown)
	ts.WG.Wait()
	return nil
}
