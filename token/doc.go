// Package token implements the lexical layer of Ion text: quoting of
// strings, symbols and clobs for writers, and a Tokenizer for readers.
package token
