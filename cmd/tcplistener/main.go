package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"sort"

	"capture/internal/request"
	"capture/internal/response"
	"capture/internal/webroot"
)

func main() {
	port := flag.Int("p", 3000, "port to listen on")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	tcp, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Println("ERROR: failed to open.\n", err.Error())
		os.Exit(1)
	}
	defer tcp.Close()

	fmt.Println("Listening for TCP traffic on", addr)
	for {
		conn, err := tcp.Accept()
		if err != nil {
			fmt.Println("ERROR: failed to accept.\n", err)
			continue
		}
		go handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()

	req, err := request.FromReader(conn, request.DefaultReadSize)
	if err != nil {
		fmt.Println("ERROR: failed to parse request:", err)
		return
	}

	fmt.Printf("Request line:\n- Method: %s\n- Target: %s\n- Version: %s\n",
		req.RequestLine.Method, req.RequestLine.RequestTarget, req.RequestLine.HTTPVersion)

	fmt.Println("Headers:")
	if len(req.Headers) == 0 {
		fmt.Println("- (none)")
	} else {
		keys := make([]string, 0, len(req.Headers))
		for k := range req.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("- %s: %s\n", k, req.Headers.Get(k))
		}
	}

	// Answer every request with the player page so a browser pointed at
	// the listener shows something.
	resp := response.Build(webroot.Resolution{Kind: webroot.Bootstrap})
	if err := resp.Write(conn); err != nil {
		fmt.Println("ERROR: failed to write response:", err)
	}
}
