// Command blockrun loads a block graph description and runs signals through
// it.
//
// Usage:
//
//	blockrun process --graph g.json --block NAME --in in.wav --out out.wav
//	blockrun compute --graph g.json --block NAME x0 x1 ...
//	blockrun response --graph g.json --block NAME --kind impulse --length 32
//	blockrun inspect --graph g.json
//	blockrun info
//
// Set BLOCKGRAPH_DEBUG=1 or pass --debug for debug logging.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
