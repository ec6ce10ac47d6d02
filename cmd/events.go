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
	"github.com/sparkify/starlake/events"
)

// EventsMain is wrapped by NewEventsCommand and only exported for testing
// purposes.
var EventsMain *events.Main

// NewEventsCommand returns a new cobra command wrapping EventsMain.
func NewEventsCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	EventsMain = events.NewMain()
	eventsCommand := &cobra.Command{
		Use:   "events",
		Short: "events - build the users and time dimensions and the songplays fact table",
		Long: `Reads the activity log from the input root and overwrites the users, time,
and songplays tables under the output root. The catalog command must have
run first: the songplays join reads the songs table back from the output
root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := EventsMain.Run(); err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := eventsCommand.Flags()
	if err := commandeer.Flags(flags, EventsMain); err != nil {
		panic(err)
	}
	return eventsCommand
}

func init() {
	subcommandFns["events"] = NewEventsCommand
}
