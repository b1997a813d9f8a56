/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/internal/ioadd"
	"github.com/gnames/gnblob/internal/ioparse"
	"github.com/gnames/gnblob/internal/iostore"
	"github.com/gnames/gnblob/pkg/config"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/spf13/cobra"
)

// getAddCmd returns the add command.
func getAddCmd() *cobra.Command {
	var f addFlags

	addCmd := &cobra.Command{
		Use:   "add DIRECTORY",
		Short: "Add fields and metadata to a BlobDir",
		Long: `Add data from analysis files to a BlobDir.

Inputs are processed in a fixed order, so that fields needed by later
inputs (identifiers, length, ncount) are already available. Fields that
already exist in the BlobDir are skipped unless --replace is given.

Examples:
  # Start a new BlobDir from an assembly
  gnblob add --create --fasta assembly.fa.gz blobdir

  # Add columns of a text file
  gnblob add --text extra.tsv --text-header --text-delimiter tab blobdir

  # Add metadata
  gnblob add --meta meta.yaml --key study.id=PRJEB1234 \
    --link record.ENA=https://www.ebi.ac.uk/ena/browser/view/{id} \
    --taxid 7955 --taxdump /data/new_taxdump blobdir`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAdd(cmd, args[0], f)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f.register(addCmd)
	return addCmd
}

func runAdd(cmd *cobra.Command, dir string, f addFlags) error {
	addOpts := []config.Option{
		config.OptAddCreate(f.create),
		config.OptAddReplace(f.replace),
	}
	if cmd.Flags().Changed("compress") {
		addOpts = append(addOpts, config.OptStoreCompress(f.compress))
	}
	if cmd.Flags().Changed("threads") {
		addOpts = append(addOpts, config.OptJobsNumber(f.threads))
	}
	if f.taxdump != "" {
		addOpts = append(addOpts, config.OptTaxdumpDir(f.taxdump))
	}
	cfg.Update(addOpts)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	store := iostore.New(dir, cfg.Store.Compress)
	adder := ioadd.New(cfg, store,
		ioadd.OptParsers(ioparse.NewFasta(), ioparse.NewText()),
	)
	return adder.Add(ctx, newRequest(f))
}

func newRequest(f addFlags) gnblob.Request {
	res := gnblob.Request{
		Inputs:   make(map[gnblob.Kind][]string),
		MetaFile: f.metaFile,
		Links:    f.links,
		Keys:     f.keys,
		TaxID:    f.taxID,
		Params: gnblob.Params{
			ioparse.ParamTextHeader:  f.textHeader,
			ioparse.ParamTextNoArray: f.textNoArray,
		},
	}
	if len(f.fasta) > 0 {
		res.Inputs[gnblob.KindFasta] = f.fasta
	}
	if len(f.text) > 0 {
		res.Inputs[gnblob.KindText] = f.text
	}
	if f.textCols != "" {
		res.Params[ioparse.ParamTextCols] = f.textCols
	}
	if f.textDelimiter != "" {
		res.Params[ioparse.ParamTextDelimiter] = f.textDelimiter
	}
	return res
}
