package server

import (
	"fmt"
	"net"
	"time"

	"capture/internal/request"
	"capture/internal/response"
	"capture/internal/webroot"
)

// helper: format duration compactly
func fmtDur(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

// handle runs one exchange: read once, parse, resolve, write, close.
// Only GET is answered. Other methods and unparseable requests get no
// reply at all; the connection is simply closed.
func (s *Server) handle(id uint64, conn net.Conn) {
	defer s.release(id)
	start := time.Now()
	logger := s.cfg.Logger

	remoteHost, _, _ := net.SplitHostPort(conn.RemoteAddr().String())

	req, err := request.FromReader(conn, s.cfg.ReadBufferSize)
	if err != nil {
		// Nothing is written back for a request we cannot read or parse.
		logger.Printf("%s\t%s\t%s\t%s\t%s\terr=%q",
			remoteHost, "-", "-", "-", fmtDur(time.Since(start)), err.Error(),
		)
		return
	}

	method := req.RequestLine.Method
	target := req.RequestLine.RequestTarget

	if method != request.MethodGet {
		logger.Printf("%s\t%s\t%s\t%s\t%s",
			remoteHost, method, target, "-", fmtDur(time.Since(start)),
		)
		return
	}

	res := webroot.Resolve(s.cfg.WebRoot, target)
	resp := response.Build(res)

	if err := resp.Write(conn); err != nil {
		logger.Printf("%s\t%s\t%s\t%d\t%s\terr=%q",
			remoteHost, method, target, int(resp.Status), fmtDur(time.Since(start)), fmt.Sprintf("write: %v", err),
		)
		return
	}

	if res.Err != nil {
		logger.Printf("%s\t%s\t%s\t%d\t%s\terr=%q",
			remoteHost, method, target, int(resp.Status), fmtDur(time.Since(start)), res.Err.Error(),
		)
		return
	}

	// Access log (success)
	logger.Printf("%s\t%s\t%s\t%d\t%s",
		remoteHost, method, target, int(resp.Status), fmtDur(time.Since(start)),
	)
}
