// 17 Oct 2026

/*
Msastat calculates statistics over the columns of a multiple sequence
alignment. The alignment is a plain text file, one sequence per line, all
lines the same length. Blank lines are skipped. Letters are amino acids,
anything else is a gap.

Given no input path, or "-", it reads from standard input.
Given no output filename, it writes to standard output.

Usage:
	msastat [global flags] command [flags] [infile [outfile]]

The commands are:
	entropy
		Entropy of each column. The output is a csv file with residue
		number, entropy and fraction of non-gap characters. With --chimera
		it also writes an attribute file for chimera.
	mutinfo
		Mutual information between every pair of columns, written as a
		square matrix, one row per line. --norm divides by the joint
		entropy.
	omes
		Observed minus expected squared, as a square matrix.
	sca
		Statistical coupling, as a square matrix.
	occupancy
		Fraction (or with --count, the number) of letters in each
		column, or with --dim rows, in each sequence.

Ambiguity codes B, J, Z and X are spread over the residues they stand for
unless --no-ambiguity is given. Pair statistics normally decode the whole
alignment first (--turbo). If that would need more than --turbolimit
bytes, or with --no-turbo, columns are decoded as they are needed. The
numbers are the same.

With --db, results are kept in a bolt database. Asking for the same
statistic, with the same settings, on the same alignment, reads the
answer from there.

The global flags are:
	--loglevel
		critical, error, warning, notice (default), info or debug
	--db
		file for the result store
	--nt
		number of threads, all processors by default
	--heatmap
		for mutinfo, omes and sca, also draw the matrix to a file. The
		extension picks the format, png, svg or pdf.
	--debug
		log the probability tables, runs on one thread
	-t
		print out timing information
*/
package main
