// Package savefile parses, filters, and serializes Kerbal Space Program
// save files (the brace-nested, line-oriented key/value ".sfs" format).
//
// # Format
//
// A save file is a sequence of blocks and parameters:
//
//	GAME
//	{
//		version = 1.3.1
//		FLIGHTSTATE
//		{
//			VESSEL
//			{
//				name = Jool Express
//				PART
//				{
//					name = mk1pod
//					parent = 0
//				}
//			}
//		}
//	}
//
// A block is a bare key line followed by a brace-delimited body; a parameter
// is a "key = value" line. Blank and unrecognized lines are preserved
// verbatim so that parsing and re-serializing an unmodified document
// reproduces equivalent output.
//
// # Usage
//
//	doc, err := savefile.ParseReader(ctx, file)
//	if err != nil {
//		return err
//	}
//
//	removed, err := doc.ScrubParts(ctx, []string{"RCSBlock"})
//	if err != nil {
//		return err
//	}
//
//	err = doc.Format(ctx, out)
//
// Parts reference their siblings by ordinal index (parent, sym, srfN, attN).
// [Document.ScrubParts] renumbers the surviving references; a reference to a
// removed part is reported as [ErrDanglingReference] rather than guessed at.
package savefile
