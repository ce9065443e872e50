package docindex

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
)

// Config is the fully-parsed server CLI: dserver [-g] document_folder
// cache_size [FIFO|RAND|LRU].
type Config struct {
	DocumentFolder string
	CacheSize      int
	CacheType      CacheType
	Quiet          bool // -g: redirect stdout to /dev/null
}

// ParseArgs parses the server's command line. A missing cache-type
// positional disables caching (CacheType = CacheNone, CacheSize
// ignored); an unrecognised cache-type string is a BadArgument.
func ParseArgs(args []string) (Config, error) {
	flagSet := flag.NewFlagSet("dserver", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	quiet := flagSet.BoolP("quiet", "g", false, "redirect stdout to /dev/null")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrBadArgument, err)
	}

	rest := flagSet.Args()
	if len(rest) < 2 {
		return Config{}, fmt.Errorf("%w: usage: dserver [-g] document_folder cache_size [FIFO|RAND|LRU]", ErrBadArgument)
	}

	cacheSize, err := strconv.Atoi(rest[1])
	if err != nil {
		return Config{}, fmt.Errorf("%w: cache_size must be an integer: %v", ErrBadArgument, err)
	}

	cfg := Config{
		DocumentFolder: rest[0],
		CacheSize:      cacheSize,
		CacheType:      CacheNone,
		Quiet:          *quiet,
	}

	if len(rest) >= 3 {
		typ, err := parseCacheType(rest[2])
		if err != nil {
			return Config{}, err
		}
		cfg.CacheType = typ
	}

	return cfg, nil
}

func parseCacheType(s string) (CacheType, error) {
	switch strings.ToUpper(s) {
	case "FIFO":
		return CacheFIFO, nil
	case "RAND":
		return CacheRandom, nil
	case "LRU":
		return CacheLRU, nil
	default:
		return CacheNone, fmt.Errorf("%w: unknown cache type %q", ErrBadArgument, s)
	}
}
