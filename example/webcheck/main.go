package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/xlab/phone"
)

// A demo-sized calling code table; production deployments generate this
// together with the metadata file.
var codeToRegion = map[int][]string{
	1:   {"US", "CA"},
	7:   {"RU", "KZ"},
	31:  {"NL"},
	33:  {"FR"},
	34:  {"ES"},
	39:  {"IT"},
	41:  {"CH"},
	44:  {"GB"},
	49:  {"DE"},
	55:  {"BR"},
	61:  {"AU"},
	81:  {"JP"},
	86:  {"CN"},
	91:  {"IN"},
	852: {"HK"},
	800: {"001"},
	808: {"001"},
}

func main() {
	metaPath := flag.String("metadata", "phone.dat", "path to the packed metadata file")
	listenAddr := flag.String("listen", "localhost:5051", "address to serve the checker on")
	flag.Parse()

	blob, err := os.ReadFile(*metaPath)
	if err != nil {
		log.Fatalln(err)
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalln(err)
	}
	util := phone.NewUtil(blob, codeToRegion, phone.WithLogger(logger))

	log.Printf("Starting checker at http://%s", *listenAddr)
	if err := http.ListenAndServe(*listenAddr, NewChecker(util)); err != nil {
		log.Fatalln(err)
	}
}
