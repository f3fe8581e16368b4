package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/saylorsolutions/symcrypt/cmd/internal"
	"github.com/saylorsolutions/symcrypt/pkg/keymat"
	"github.com/saylorsolutions/symcrypt/pkg/provider"
	"github.com/saylorsolutions/symcrypt/pkg/totp"
	"github.com/saylorsolutions/symcrypt/pkg/xor"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	ErrUsage       = errors.New("usage error")
	ErrInvalidCode = errors.New("code is not valid")
)

const usageHeader = `
symcrypt encrypts and decrypts data with password derived symmetric keys, and generates time based one time codes.
The same password and algorithm always derive the same key, so two parties only need to share the password.

USAGE:  symcrypt COMMAND [FLAGS]

COMMANDS:
    encrypt    Encrypt input with the selected algorithm.
    decrypt    Decrypt input with the selected algorithm.
    keygen     Derive (or randomly generate) key material and write it as a portable blob that can be used with --key-file.
    totp SEED  Print the current and previous one time code for SEED, or validate one with --validate.
    list       List supported algorithms.

Run 'symcrypt COMMAND --help' for the flags of a command.
`

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger

	algorithm string
	password  string
	keyFile   string
	in        string
	out       string
	hexFlag   bool
	compress  bool
	verbose   bool
	help      bool
	random    bool

	validate  uint32
	allowLast bool
	standard  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		_, _ = fmt.Fprint(stdout, usageHeader)
		return nil
	}
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	cmd, rest := args[0], args[1:]
	var exec func(flags *flag.FlagSet) error
	flags := flag.NewFlagSet(cmd, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVarP(&a.help, "help", "h", false, "Prints this usage information.")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log details of each step to stderr.")

	switch cmd {
	case "encrypt":
		a.cipherFlags(flags, "Hex encode the ciphertext.", "Compress the input with lz4 before encrypting.")
		exec = a.encrypt
	case "decrypt":
		a.cipherFlags(flags, "Input is hex encoded.", "Decompress the plaintext with lz4 after decrypting.")
		exec = a.decrypt
	case "keygen":
		flags.StringVarP(&a.algorithm, "algorithm", "a", keymat.AESCBC.String(), "Algorithm to derive key material for.")
		flags.StringVarP(&a.password, "password", "p", "", "Password to derive key material from.")
		flags.StringVarP(&a.out, "out", "o", "", "Output file. Defaults to stdout.")
		flags.BoolVarP(&a.hexFlag, "hex", "x", false, "Hex encode the key material.")
		flags.BoolVarP(&a.random, "random", "r", false, "Generate random key material instead of deriving it. Only holders of the key file can decrypt.")
		exec = a.keygen
	case "totp":
		flags.Uint32Var(&a.validate, "validate", 0, "Validate the given code instead of printing codes. Exits with an error if invalid.")
		flags.BoolVar(&a.allowLast, "allow-last", false, "Accept the code from the previous window when validating.")
		flags.BoolVar(&a.standard, "standard", false, "Reduce the whole code modulo 1,000,000. Both ends must use the same mode.")
		exec = a.totp
	case "list":
		exec = a.list
	default:
		return fmt.Errorf("%w: unknown command '%s'", ErrUsage, cmd)
	}
	flags.Usage = func() {
		_, _ = fmt.Fprintf(stdout, "USAGE:  symcrypt %s [FLAGS]\n\nFLAGS:\n%s", cmd, flags.FlagUsages())
	}

	if err := flags.Parse(rest); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if a.help {
		flags.Usage()
		return nil
	}
	a.log = internal.NewLogger(stderr, a.verbose)
	return exec(flags)
}

func (a *app) cipherFlags(flags *flag.FlagSet, hexUsage, compressUsage string) {
	flags.StringVarP(&a.algorithm, "algorithm", "a", keymat.AESCBC.String(), "Algorithm to use, see 'symcrypt list'. Ignored with --key-file.")
	flags.StringVarP(&a.password, "password", "p", "", "Password to derive the key from.")
	flags.StringVarP(&a.keyFile, "key-file", "k", "", "Use key material written by 'symcrypt keygen' instead of a password.")
	flags.StringVarP(&a.in, "in", "i", "", "Input file. Defaults to stdin.")
	flags.StringVarP(&a.out, "out", "o", "", "Output file. Defaults to stdout.")
	flags.BoolVarP(&a.hexFlag, "hex", "x", false, hexUsage)
	flags.BoolVarP(&a.compress, "compress", "z", false, compressUsage)
}

func (a *app) keyMaterial(flags *flag.FlagSet, log *logrus.Entry) (*keymat.KeyMaterial, error) {
	if len(a.keyFile) > 0 {
		km, err := readKeyFile(a.keyFile)
		if err != nil {
			return nil, err
		}
		if flags.Changed("algorithm") {
			alg, err := keymat.ParseAlgorithm(a.algorithm)
			if err != nil {
				return nil, err
			}
			if err := km.Expect(alg); err != nil {
				return nil, err
			}
		}
		log.WithFields(logrus.Fields{
			"algorithm": km.Algorithm.String(),
			"key_file":  a.keyFile,
		}).Debug("Loaded key material")
		return km, nil
	}
	if !flags.Changed("password") {
		return nil, fmt.Errorf("%w: one of --password or --key-file is required", ErrUsage)
	}
	alg, err := keymat.ParseAlgorithm(a.algorithm)
	if err != nil {
		return nil, err
	}
	log.WithField("algorithm", alg.String()).Debug("Deriving key material from password")
	return keymat.NewKeyMaterial(alg, a.password)
}

// streams reports whether the input can be piped through an XOR screen instead of being buffered.
func (a *app) streams(km *keymat.KeyMaterial) bool {
	return km.Algorithm == keymat.MultiXOR && !a.compress && !a.hexFlag
}

func (a *app) encrypt(flags *flag.FlagSet) error {
	log := internal.Operation(a.log, "encrypt")
	km, err := a.keyMaterial(flags, log)
	if err != nil {
		return err
	}
	if a.streams(km) {
		return a.stream(km, log, func(in io.Reader, out io.Writer) (int64, error) {
			w, err := xor.NewWriter(out, km.Key)
			if err != nil {
				return 0, err
			}
			return io.Copy(w, in)
		})
	}
	p, err := provider.FromKeyMaterial(km)
	if err != nil {
		return err
	}
	data, err := a.readInput()
	if err != nil {
		return err
	}
	log.WithField("bytes", len(data)).Debug("Read input")
	if a.compress {
		data, err = compress(data)
		if err != nil {
			return err
		}
		log.WithField("bytes", len(data)).Debug("Compressed input")
	}
	out, err := p.Encrypt(data)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(out)).Debug("Encrypted")
	if a.hexFlag {
		out = []byte(hex.EncodeToString(out) + "\n")
	}
	return a.writeOutput(out)
}

func (a *app) decrypt(flags *flag.FlagSet) error {
	log := internal.Operation(a.log, "decrypt")
	km, err := a.keyMaterial(flags, log)
	if err != nil {
		return err
	}
	if a.streams(km) {
		return a.stream(km, log, func(in io.Reader, out io.Writer) (int64, error) {
			r, err := xor.NewReader(in, km.Key)
			if err != nil {
				return 0, err
			}
			return io.Copy(out, r)
		})
	}
	p, err := provider.FromKeyMaterial(km)
	if err != nil {
		return err
	}
	data, err := a.readInput()
	if err != nil {
		return err
	}
	if a.hexFlag {
		data, err = hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return fmt.Errorf("failed to decode hex input: %w", err)
		}
	}
	log.WithField("bytes", len(data)).Debug("Read input")
	out, err := p.Decrypt(data)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(out)).Debug("Decrypted")
	if a.compress {
		out, err = decompress(out)
		if err != nil {
			return err
		}
		log.WithField("bytes", len(out)).Debug("Decompressed output")
	}
	return a.writeOutput(out)
}

// stream connects input to output through pipe without buffering the whole payload.
func (a *app) stream(km *keymat.KeyMaterial, log *logrus.Entry, pipe func(in io.Reader, out io.Writer) (int64, error)) error {
	in, err := a.openInput()
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()
	out, err := a.openOutput()
	if err != nil {
		return err
	}
	n, err := pipe(in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"algorithm": km.Algorithm.String(),
		"bytes":     n,
		"streamed":  true,
	}).Debug("Screened input")
	return nil
}

func (a *app) keygen(flags *flag.FlagSet) error {
	log := internal.Operation(a.log, "keygen")
	alg, err := keymat.ParseAlgorithm(a.algorithm)
	if err != nil {
		return err
	}
	var km *keymat.KeyMaterial
	switch {
	case a.random:
		km, err = randomKeyMaterial(alg)
	case flags.Changed("password"):
		km, err = keymat.NewKeyMaterial(alg, a.password)
	default:
		return fmt.Errorf("%w: one of --password or --random is required", ErrUsage)
	}
	if err != nil {
		return err
	}
	out, err := km.MarshalBinary()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"algorithm": alg.String(),
		"bytes":     len(out),
		"random":    a.random,
	}).Debug("Generated key material")
	if a.hexFlag {
		out = []byte(hex.EncodeToString(out) + "\n")
	}
	return a.writeOutput(out)
}

func (a *app) totp(flags *flag.FlagSet) error {
	log := internal.Operation(a.log, "totp")
	if flags.NArg() != 1 {
		return fmt.Errorf("%w: exactly one SEED argument is required", ErrUsage)
	}
	var opts []totp.Opt
	if a.standard {
		opts = append(opts, totp.WithStandardTruncation())
	}
	otp := totp.Generate(flags.Arg(0), opts...)
	log.WithFields(logrus.Fields{
		"seconds":  otp.Seconds,
		"standard": a.standard,
	}).Debug("Generated codes")

	if flags.Changed("validate") {
		if !otp.Validate(a.validate, a.allowLast) {
			return ErrInvalidCode
		}
		internal.EchoTo(a.stdout, "Code is valid")
		return nil
	}
	internal.EchoTo(a.stdout, "Code:      %d", otp.Code)
	internal.EchoTo(a.stdout, "Last code: %d", otp.LastCode)
	internal.EchoTo(a.stdout, "Expires:   %ds", otp.Seconds)
	return nil
}

func (a *app) list(*flag.FlagSet) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tID\tKEY\tIV\tALIASES")
	for _, alg := range keymat.Algorithms() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", alg, uint16(alg), alg.KeySize(), alg.IVSize(), strings.Join(alg.Aliases(), ", "))
	}
	return tw.Flush()
}

func (a *app) openInput() (io.ReadCloser, error) {
	if len(a.in) == 0 || a.in == "-" {
		return io.NopCloser(a.stdin), nil
	}
	f, err := os.Open(a.in)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file '%s': %w", a.in, err)
	}
	return f, nil
}

func (a *app) readInput() ([]byte, error) {
	in, err := a.openInput()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = in.Close()
	}()
	return io.ReadAll(in)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func (a *app) openOutput() (io.WriteCloser, error) {
	if len(a.out) == 0 || a.out == "-" {
		return nopWriteCloser{a.stdout}, nil
	}
	f, err := os.OpenFile(a.out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to write output file '%s': %w", a.out, err)
	}
	return f, nil
}

func (a *app) writeOutput(data []byte) error {
	out, err := a.openOutput()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

func randomKeyMaterial(alg keymat.Algorithm) (*keymat.KeyMaterial, error) {
	keySize := alg.KeySize()
	buf, err := xor.GenKey(keySize + alg.IVSize())
	if err != nil {
		return nil, err
	}
	var iv []byte
	if alg.IVSize() > 0 {
		iv = buf[keySize:]
	}
	return keymat.FromBytes(alg, buf[:keySize], iv)
}

// readKeyFile accepts key material in either the binary or hex encoded form written by keygen.
func readKeyFile(path string) (*keymat.KeyMaterial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file '%s': %w", path, err)
	}
	var km keymat.KeyMaterial
	if err := km.UnmarshalBinary(data); err == nil {
		return &km, nil
	}
	decoded, err := hex.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: key file '%s' is neither binary nor hex encoded key material", keymat.ErrInvalidHeader, path)
	}
	if err := km.UnmarshalBinary(decoded); err != nil {
		return nil, err
	}
	return &km, nil
}
