package cli

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"pngme/internal/commands"
	"pngme/internal/crypto"

	"golang.org/x/term"
)

type passphraseFlags struct {
	value  string
	file   string
	prompt bool
}

func setPassphraseFlags(fs *flag.FlagSet, pass *passphraseFlags) {
	fs.StringVar(&pass.value, "passphrase", "", "Passphrase sealing the message (visible in process list, prefer -p)")
	fs.StringVar(&pass.file, "passphrase-file", "", "Read passphrase from first line of file")
	fs.BoolVar(&pass.prompt, "p", false, "Prompt for passphrase on the terminal")
	fs.BoolVar(&pass.prompt, "prompt", false, "Prompt for passphrase on the terminal")
}

// Returns the passphrase from whichever single source was selected, nil when none was.
// confirm asks twice when prompting.
func (pass *passphraseFlags) resolve(streams Streams, confirm bool) (passphrase []byte, err error) {
	sources := 0
	for _, used := range []bool{pass.value != "", pass.file != "", pass.prompt} {
		if used {
			sources++
		}
	}
	if sources > 1 {
		err = fmt.Errorf("%w: choose only one of --passphrase, --passphrase-file or --prompt", commands.ErrSyntax)
		return
	}

	switch {
	case pass.value != "":
		passphrase = []byte(pass.value)
	case pass.file != "":
		passphrase, err = readPassphraseFile(pass.file)
	case pass.prompt:
		passphrase, err = promptPassphrase(streams, confirm)
	}
	return
}

func readPassphraseFile(path string) (passphrase []byte, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: failed to read passphrase file: %w", commands.ErrFile, err)
		return
	}
	defer crypto.Memzero(content)

	line, _, _ := bytes.Cut(content, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		err = fmt.Errorf("%w: passphrase file '%s' is empty", commands.ErrSyntax, path)
		return
	}
	passphrase = bytes.Clone(line)
	return
}

func promptPassphrase(streams Streams, confirm bool) (passphrase []byte, err error) {
	if streams.In == nil || !term.IsTerminal(int(streams.In.Fd())) {
		err = errors.New("cannot prompt for passphrase: standard input is not a terminal")
		return
	}
	fd := int(streams.In.Fd())

	fmt.Fprint(streams.Err, "Passphrase: ")
	passphrase, err = term.ReadPassword(fd)
	fmt.Fprintln(streams.Err)
	if err != nil {
		err = fmt.Errorf("failed to read passphrase: %w", err)
		return
	}
	if len(passphrase) == 0 {
		err = fmt.Errorf("%w: empty passphrase", commands.ErrSyntax)
		return
	}

	if !confirm {
		return
	}

	fmt.Fprint(streams.Err, "Confirm passphrase: ")
	repeat, err := term.ReadPassword(fd)
	fmt.Fprintln(streams.Err)
	defer crypto.Memzero(repeat)
	if err != nil {
		crypto.Memzero(passphrase)
		passphrase = nil
		err = fmt.Errorf("failed to read passphrase: %w", err)
		return
	}
	if !bytes.Equal(passphrase, repeat) {
		crypto.Memzero(passphrase)
		passphrase = nil
		err = fmt.Errorf("%w: passphrases do not match", commands.ErrSyntax)
		return
	}
	return
}
