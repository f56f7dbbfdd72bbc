// Package cpu implements the MIX computer and its MIXAL assembler.
//
// The machine has 4000 words of memory, the registers A, X, I1..I6 and J,
// an overflow toggle and a comparison indicator. I/O units run
// concurrently with the program in simulated time: each IN or OUT arms a
// unit, whose block is transferred when half of the operation time has
// elapsed.
//
// The assembler is a single pass MIXAL assembler with future references,
// local symbols nH/nB/nF, literal constants, and compile-time $(...)
// expressions.
package cpu
