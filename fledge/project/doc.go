// Package project detects what kind of JavaScript project a directory holds.
//
// Weaver scaffolds into existing applications, so it looks before it
// writes:
//
//	info, err := project.Detect("./my-app")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !info.HasPackageJSON() {
//	    fmt.Println("not a JavaScript project")
//	}
//	fmt.Println(info.PackageManager) // from the lockfile, e.g. "pnpm"
package project
