// Copyright 2018 Sparkify Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"
	"github.com/sparkify/starlake/catalog"
)

// CatalogMain is wrapped by NewCatalogCommand and only exported for testing
// purposes.
var CatalogMain *catalog.Main

// NewCatalogCommand returns a new cobra command wrapping CatalogMain.
func NewCatalogCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	CatalogMain = catalog.NewMain()
	catalogCommand := &cobra.Command{
		Use:   "catalog",
		Short: "catalog - build the songs and artists dimension tables",
		Long: `Reads the song catalog from the input root and overwrites the songs and
artists tables under the output root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := CatalogMain.Run(); err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := catalogCommand.Flags()
	if err := commandeer.Flags(flags, CatalogMain); err != nil {
		panic(err)
	}
	return catalogCommand
}

func init() {
	subcommandFns["catalog"] = NewCatalogCommand
}
