// Package flagx holds the command-line helpers shared by the config packages
// of every PetGuard binary. Each config package parses only the flags it owns,
// so os.Args is filtered before being handed to a private FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// FilterArgs returns the subset of args made of allowed flags and their
// values. Both "-f value" and "-f=value" forms are recognized; a value is only
// consumed when the next argument does not itself look like a flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

func stringFlag(names ...string) string {
	var value string
	allowed := make([]string, 0, len(names))
	fs := flag.NewFlagSet(names[0], flag.ContinueOnError)
	for _, n := range names {
		allowed = append(allowed, "-"+n)
		fs.StringVar(&value, n, "", n)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))
	return value
}

// JsonConfigFlags returns the JSON config path given with -c or -config,
// or an empty string.
func JsonConfigFlags() string {
	return stringFlag("config", "c")
}

// EnvFileFlag returns the dotenv path given with -env, or an empty string.
func EnvFileFlag() string {
	return stringFlag("env")
}

// LoadEnvFile loads the dotenv file named by -env into the process
// environment. Variables that are already set are not overridden.
func LoadEnvFile() error {
	path := EnvFileFlag()
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}

// LookupEnv returns the value of the prefixed variable PETGUARD_<name>.
func LookupEnv(name string) (string, bool) {
	return os.LookupEnv("PETGUARD_" + name)
}
