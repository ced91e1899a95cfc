// Copyright 2025 The PGalyzer Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the pgalyzer command line tool.

PGalyzer analyzes Project Gutenberg plain text books. It counts n-grams and
words, builds keyword-in-context concordances, and predicts the most likely
next or previous word after a given word. Text comes from a file path, or
from stdin when the path is "-", in which case the first line must mention
Project Gutenberg.

# Usage

Global flags come before the command:

	pgalyzer [-d] [-config PATH] <command> [flags] FILE [ARGS]

Count bigrams of a cleaned book:

	pgalyzer ngrams book.txt -n 2 -c

Show the context around a word:

	pgalyzer concordance book.txt whale -ns 5
	pgalyzer display-concordance book.txt whale -ns 5

Predict words:

	pgalyzer likely-next book.txt the -n 3
	cat book.txt | pgalyzer likely-previous - sea

Ranked output prints one "text<TAB>count" pair per line. Concordances print
one "before<TAB>after" pair per occurrence.

# Commands

	ngrams               sorted n-gram counts (-n size, -l limit)
	word-count           sorted word counts
	concordance          context windows around a word (-ns size)
	display-concordance  aligned concordance with the word marked as **word**
	likely-next          most likely next words (-n count)
	likely-previous      most likely previous words (-n count)
	complete             most frequent words starting with a prefix (-n count)
	repl                 interactive queries against one book
	serve                MessagePack IPC server on stdin/stdout
	version              version info

Every analysis command accepts -c (or -clean-pg) to strip the Project
Gutenberg header and footer and normalize the text before analysis.

# Configuration

Defaults are read from a TOML file, created on first use at
[UserConfigDir]/pgalyzer/config.toml unless -config points elsewhere:

	[analysis]
	clean = false
	ngram_size = 1
	neighborhood_size = 10
	likely_limit = 5

	[server]
	max_limit = 64
	max_neighborhood = 50

	[cli]
	default_limit = 10
	default_neighborhood = 5

Flags always override the file.

# Server Mode

serve loads the book once and answers MessagePack requests from stdin on
stdout. See package server for the protocol.

	{"id": "req1", "action": "next", "w": "the", "n": 3}
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const (
	Version = "0.3.0"
	AppName = "pgalyzer"
	gh      = "https://github.com/bastiangx/pgalyzer"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}
