/*
Command unistring measures text line by line.

For every line of input it prints the number of bytes, the number of
code points, the number of terminal columns the line occupies, and the
line itself. A total is printed for every input.

Usage

   unistring [-ea] [-encoding E] [-locale L] [-env] [-trace D|I|E] [-j N] [files...]

Without files, standard input is read. Files are measured concurrently by up
to N workers; output is printed in the order given on the command line.

Characters of ambiguous East Asian width are narrow by default. They are
considered wide with flag -ea, for a legacy CJK encoding given by -encoding
(e.g. "EUC-JP"), or for an East Asian locale given by -locale or found in
the user's environment with -env.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/unistring/uax11"
)

func main() {
	ea := flag.Bool("ea", false, "Treat ambiguous characters as wide")
	enc := flag.String("encoding", "", "Legacy encoding determining the width of ambiguous characters")
	locale := flag.String("locale", "", "Locale determining the width of ambiguous characters")
	env := flag.Bool("env", false, "Take the locale from the user's environment")
	tlevel := flag.String("trace", "E", "Trace level [D|I|E]")
	jobs := flag.Int("j", runtime.NumCPU(), "Number of files to measure concurrently")
	flag.Parse()
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(traceLevel(*tlevel))
	//
	wctx := selectContext(*ea, *enc, *locale, *env)
	tracer().Infof("measuring with locale %s, East Asian = %v", wctx.Locale, wctx.IsEastAsian())
	m := newMeasurer(wctx, *jobs)
	defer m.close()
	if err := run(context.Background(), flag.Args(), *jobs, m, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func traceLevel(l string) tracing.TraceLevel {
	switch l {
	case "D":
		return tracing.LevelDebug
	case "I":
		return tracing.LevelInfo
	case "E":
		return tracing.LevelError
	}
	return tracing.LevelError
}

// selectContext chooses the typesetting context from the command line flags.
// Flags take precedence in the order -ea, -encoding, -locale, -env.
func selectContext(ea bool, enc, locale string, env bool) *uax11.Context {
	switch {
	case ea:
		return uax11.EastAsianContext
	case enc != "":
		return uax11.ContextForEncoding(enc)
	case locale != "":
		return uax11.ContextFromLocale(locale)
	case env:
		return uax11.ContextFromEnvironment()
	}
	return uax11.LatinContext
}
