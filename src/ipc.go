package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jinjor/mono-synth/src/audio"
)

// ipcConn serializes writes from the report goroutine.
type ipcConn struct {
	net.Conn
	mu sync.Mutex
}

func (c *ipcConn) writeLine(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.Write([]byte(s + "\n"))
	return err
}

// withIPCConnection accepts one client on a unix socket and runs f with it.
// Cancelling ctx closes the listener and the connection.
func withIPCConnection(ctx context.Context, sockFileName string, f func(context.Context, *ipcConn) error) error {
	os.Remove(sockFileName)
	listener, err := new(net.ListenConfig).Listen(ctx, "unix", sockFileName)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		listener.Close()
	})
	defer stop()
	defer func() {
		log.Println("Closing IPC...")
		if err := listener.Close(); err != nil && ctx.Err() == nil {
			log.Printf("error while closing listener: %v", err)
		}
		os.Remove(sockFileName)
	}()
	log.Printf("start listening on %s...\n", sockFileName)
	conn, err := listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	stopConn := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stopConn()
	defer func() {
		if err := conn.Close(); err != nil && ctx.Err() == nil {
			log.Printf("error while closing connection: %v", err)
		}
	}()
	return f(ctx, &ipcConn{Conn: conn})
}

// discardDisplay drains ch until the returned stop func is called, so that
// control changes made before a client connects do not stall the command
// goroutine. stop waits for the drain to end.
func discardDisplay(ctx context.Context, ch <-chan audio.DisplayEvent) (stop func()) {
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ch:
			case <-quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			<-done
		})
	}
}

// receiveCommands forwards each line from the client as a command. The
// client closing the connection ends the daemon.
func receiveCommands(ctx context.Context, conn io.Reader, commandCh chan<- []string) error {
	reader := bufio.NewReader(conn)
	var line []byte
	for {
		next, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			log.Println("client disconnected")
			return errQuit
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		line = append(line, next...)
		if isPrefix {
			continue
		}
		command, err := parseCommand(string(line))
		line = line[:0]
		if err != nil {
			log.Printf("[WARN] dropped line: %v", err)
			continue
		}
		if len(command) == 0 {
			continue
		}
		select {
		case commandCh <- command:
		case <-ctx.Done():
			return nil
		}
	}
}

// parseCommand splits a line on spaces and unescapes each field.
func parseCommand(line string) ([]string, error) {
	fields := strings.Fields(line)
	for i, item := range fields {
		escaped, err := url.QueryUnescape(item)
		if err != nil {
			return nil, err
		}
		fields[i] = escaped
	}
	return fields, nil
}

// sendReports writes display events as they come and the spectrum and
// levels on every tick.
func sendReports(ctx context.Context, conn *ipcConn, a *audio.Audio, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("sendReports() ended.")
			return nil
		case ev := <-a.DisplayCh:
			if err := conn.writeLine(formatDisplay(ev)); err != nil {
				return err
			}
		case <-t.C:
			if err := conn.writeLine(formatFFT(a.GetFFT())); err != nil {
				return err
			}
			if err := conn.writeLine(formatLevels(a.Levels())); err != nil {
				return err
			}
		}
	}
}

func formatDisplay(ev audio.DisplayEvent) string {
	return fmt.Sprintf("display %s %s %s", ev.Key,
		strconv.FormatFloat(ev.Value, 'f', -1, 64), url.QueryEscape(ev.Text))
}

func formatFFT(values []float64) string {
	var b strings.Builder
	b.WriteString("fft")
	for _, v := range values {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(v, 'f', 6, 64))
	}
	return b.String()
}

func formatLevels(l audio.Levels) string {
	return fmt.Sprintf("levels %s %s",
		strconv.FormatFloat(l.Peak, 'f', 1, 64), strconv.FormatFloat(l.RMS, 'f', 1, 64))
}
