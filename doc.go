// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package settings persists application configuration in a RON file.

It defines a generic handle, [Settings], which couples a caller-defined value
with the path of the file it was loaded from. [Load] finds the settings file
for an application and [LoadFrom] reads a file at a given path.
The value is accessed through [Settings.Value] and written back with
[Settings.Save] or [Settings.SaveTo], in a pretty form with struct names
which is friendly to hand editing and version control.

[Load] checks the following locations in order and uses the first existing file:
  - the environment variable `{APPLICATION}_CONFIG_PATH`;
  - `settings.ron` in the current directory;
  - `settings.ron` in the configuration directory of the operating system.

Saving is not atomic: a crash while writing may leave a truncated file.
Settings is not safe for concurrent use.
*/
package settings
