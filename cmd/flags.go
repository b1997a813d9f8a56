package cmd

import (
	"github.com/spf13/cobra"
)

// addFlags keeps values of the add command flags.
type addFlags struct {
	fasta         []string
	text          []string
	metaFile      string
	keys          []string
	links         []string
	taxID         string
	taxdump       string
	textCols      string
	textHeader    bool
	textDelimiter string
	textNoArray   bool
	threads       int
	create        bool
	replace       bool
	compress      bool
}

func (f *addFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.fasta, "fasta", nil, "FASTA assembly file")
	fl.StringSliceVar(&f.text, "text", nil, "delimited text file(s)")
	fl.StringVar(&f.metaFile, "meta", "", "YAML file with dataset metadata")
	fl.StringArrayVar(&f.keys, "key", nil, "metadata key as path=value")
	fl.StringArrayVar(&f.links, "link", nil, "link template as path=url")
	fl.StringVar(&f.taxID, "taxid", "", "add ranks of a taxid to metadata")
	fl.StringVar(&f.taxdump, "taxdump", "", "NCBI new_taxdump directory")
	fl.StringVar(&f.textCols, "text-cols", "",
		"text columns, e.g. 1=identifiers,2=gc")
	fl.BoolVar(&f.textHeader, "text-header", false,
		"first line of text files is a header")
	fl.StringVar(&f.textDelimiter, "text-delimiter", "",
		"text delimiter, whitespace by default")
	fl.BoolVar(&f.textNoArray, "text-no-array", false,
		"keep one value per identifier in text files")
	fl.IntVarP(&f.threads, "threads", "j", 0, "number of concurrent workers")
	fl.BoolVarP(&f.create, "create", "c", false, "create a new BlobDir")
	fl.BoolVarP(&f.replace, "replace", "r", false, "replace existing fields")
	fl.BoolVar(&f.compress, "compress", false, "write gzipped units")
}
