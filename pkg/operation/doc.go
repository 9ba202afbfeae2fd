/*
Package operation implements the rename pass.

	+-------------+     +-------------+     +-------------+
	|   mapping   | --> |    scan     | --> |  operation  |
	|  (Table)    |     |  (Index)    |     |  (Result)   |
	+-------------+     +-------------+     +------+------+
	                                               |
	                                        +------+------+
	                                        |   status    |
	                                        |  (Tracker)  |
	                                        +-------------+

🔄 Flow:
 1. Parse the mapping file. Format and duplicate errors stop here, before anything is written
 2. Create the renamed and original subfolders if needed
 3. Scan the folder once
 4. For each row in mapping order: copy to the renamed folder under the new
    name, then move the original into the original folder
 5. Report the rows whose file could not be found

⚡ Per-step outcomes:
  - Done: the copy or move happened
  - SkippedExists: the destination was already there and is left untouched
  - Failed: the step errored; a failed copy leaves the source where it is
  - NotAttempted: the step never ran

A move that is skipped leaves the source in the top-level folder.
*/
package operation
