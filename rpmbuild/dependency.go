/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package rpmbuild

import (
	"fmt"

	"github.com/holocm/rpmcore/rpm"
)

// Dependency is one entry of a Provides/Requires/Obsoletes/Conflicts list.
// Sense is a combination of the rpm.Sense* bits.
type Dependency struct {
	Name    string
	Version string
	Sense   int32
}

// addDependencyTags writes the parallel name/version/flags arrays for one
// dependency relation kind. Per [LSB,25.2.4.4], a relation kind with no
// entries is omitted entirely rather than written with empty arrays.
func addDependencyTags(h *rpm.Header, deps []Dependency, nameTag, versionTag, flagsTag rpm.Tag) {
	if len(deps) == 0 {
		return
	}
	names := make([]string, len(deps))
	versions := make([]string, len(deps))
	flags := make([]int32, len(deps))
	for i, d := range deps {
		names[i] = d.Name
		versions[i] = d.Version
		flags[i] = d.Sense
	}
	h.Add(uint32(nameTag), rpm.NewStringArrayValue(names))
	h.Add(uint32(versionTag), rpm.NewStringArrayValue(versions))
	h.Add(uint32(flagsTag), rpm.NewInt32Value(flags))
}

// fullVersionString returns "version-release", prefixed with "epoch:" when
// the builder has a non-zero epoch, matching RPM's epoch:version-release
// convention.
func fullVersionString(b *Builder) string {
	str := fmt.Sprintf("%s-%s", b.Version, b.Release)
	if b.Epoch != 0 {
		str = fmt.Sprintf("%d:%s", b.Epoch, str)
	}
	return str
}

// provideVersionString returns the version the implicit self-provides
// carry: the bare version field (not version-release), prefixed with
// "epoch:" when the builder has a non-zero epoch.
func provideVersionString(b *Builder) string {
	if b.Epoch != 0 {
		return fmt.Sprintf("%d:%s", b.Epoch, b.Version)
	}
	return b.Version
}

// implicitProvides returns the two self-provides every package carries:
// "name = version" and "name(arch) = version".
func implicitProvides(b *Builder) []Dependency {
	version := provideVersionString(b)
	return []Dependency{
		{Name: b.Name, Version: version, Sense: rpm.SenseEqual},
		{Name: fmt.Sprintf("%s(%s)", b.Name, b.Arch), Version: version, Sense: rpm.SenseEqual},
	}
}

// implicitRequires returns the one dependency every package using a
// scriptlet implicitly needs: an interpreter to run it in.
func implicitRequires() []Dependency {
	return []Dependency{
		{Name: "/bin/sh", Sense: rpm.SenseAny},
	}
}
